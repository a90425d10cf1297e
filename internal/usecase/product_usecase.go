package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
	repo "github.com/shiyas-dx/Project/internal/repository"
	"github.com/shiyas-dx/Project/internal/validator"
)

type ProductUsecase struct {
	tx       repo.TransactionManager
	products repo.ProductRepository
}

// DI
func NewProductUsecase(tx repo.TransactionManager, products repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{tx: tx, products: products}
}

// ProductInput is shared by create, full update and partial update.
// A nil field is "not provided".
type ProductInput struct {
	Name        *string
	Specs       *string
	Description json.RawMessage
	Brand       *string
	Category    json.RawMessage
	Price       *int64
	Rating      *float64
	Quantity    *int64
	Image       *string
}

func (u *ProductUsecase) ListPublic(ctx context.Context, search string) ([]model.Product, error) {
	if len(search) > 100 {
		return []model.Product{}, NewHTTPError(http.StatusBadRequest, "search too long")
	}
	items, err := u.products.List(ctx, repo.ProductListQuery{Search: strings.TrimSpace(search)})
	if err != nil {
		return []model.Product{}, NewInternalError("db error", err)
	}
	return items, nil
}

func (u *ProductUsecase) Get(ctx context.Context, productID int64) (model.Product, error) {
	if productID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}

	p, err := u.products.FindByID(ctx, productID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, msgProductNotFound)
	}
	if err != nil {
		return model.Product{}, NewInternalError("db error", err)
	}
	return p, nil
}

func (u *ProductUsecase) AdminList(ctx context.Context) ([]model.Product, error) {
	return u.ListPublic(ctx, "")
}

func (u *ProductUsecase) AdminCreate(ctx context.Context, adminUserID int64, in ProductInput) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var p model.Product
	if err := applyProductInput(&p, in, false); err != nil {
		return model.Product{}, err
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		created, err := r.Products().Create(ctx, p)
		if err != nil {
			return NewInternalError("db error", err)
		}
		p = created
		return writeAudit(ctx, r, adminUserID, model.AuditActionCreateProduct, model.AuditResourceProduct, p.ID, nil, productSnapshot(p))
	})
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// AdminUpdate replaces the product (partial=false) or patches the provided fields.
func (u *ProductUsecase) AdminUpdate(ctx context.Context, adminUserID int64, productID int64, in ProductInput, partial bool) (model.Product, error) {
	if adminUserID <= 0 {
		return model.Product{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out model.Product
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		if err != nil {
			return NewInternalError("db error", err)
		}

		after := before
		if err := applyProductInput(&after, in, partial); err != nil {
			return err
		}
		after.UpdatedAt = time.Now()

		err = r.Products().Update(ctx, after)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		if err != nil {
			return NewInternalError("db error", err)
		}
		out = after
		return writeAudit(ctx, r, adminUserID, model.AuditActionUpdateProduct, model.AuditResourceProduct, productID, productSnapshot(before), productSnapshot(after))
	})
	if err != nil {
		return model.Product{}, err
	}
	return out, nil
}

// AdminDelete hides the product from the catalog and drops it from every cart and wishlist.
// Existing order items keep their snapshot.
func (u *ProductUsecase) AdminDelete(ctx context.Context, adminUserID int64, productID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		before, err := r.Products().FindByID(ctx, productID)
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, msgProductNotFound)
		}
		if err != nil {
			return NewInternalError("db error", err)
		}

		if err := r.Carts().DeleteByProductID(ctx, productID); err != nil {
			return NewInternalError("db error", err)
		}
		if err := r.Wishlists().DeleteByProductID(ctx, productID); err != nil {
			return NewInternalError("db error", err)
		}
		if err := r.Products().SoftDelete(ctx, productID); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return NewHTTPError(http.StatusNotFound, msgProductNotFound)
			}
			return NewInternalError("db error", err)
		}
		return writeAudit(ctx, r, adminUserID, model.AuditActionDeleteProduct, model.AuditResourceProduct, productID, productSnapshot(before), nil)
	})
}

func applyProductInput(p *model.Product, in ProductInput, partial bool) error {
	fields := map[string]string{}
	required := func(name string, present bool) bool {
		if !present && !partial {
			fields[name] = "This field is required."
		}
		return present
	}

	if required("name", in.Name != nil) {
		name := strings.TrimSpace(*in.Name)
		switch {
		case name == "":
			fields["name"] = "This field may not be blank."
		case len(name) > 255:
			fields["name"] = "Ensure this field has no more than 255 characters."
		default:
			p.Name = name
		}
	}
	if required("specs", in.Specs != nil) {
		p.Specs = *in.Specs
	}
	if required("brand", in.Brand != nil) {
		brand := strings.TrimSpace(*in.Brand)
		if brand == "" {
			fields["brand"] = "This field may not be blank."
		} else {
			p.Brand = brand
		}
	}
	if required("description", in.Description != nil) {
		v, err := validator.StructuredJSON(in.Description)
		if err != nil {
			fields["description"] = "Description must be valid JSON"
		} else {
			p.Description = v
		}
	}
	if required("category", in.Category != nil) {
		v, err := validator.StructuredJSON(in.Category)
		if err != nil {
			fields["category"] = "Category must be valid JSON"
		} else {
			p.Category = v
		}
	}
	if required("price", in.Price != nil) {
		if *in.Price < 0 {
			fields["price"] = "Ensure this value is greater than or equal to 0."
		} else {
			p.Price = *in.Price
		}
	}
	if required("rating", in.Rating != nil) {
		r := *in.Rating
		if math.IsNaN(r) || r < 0 || r > 5 {
			fields["rating"] = "Ensure this value is between 0 and 5."
		} else {
			p.Rating = r
		}
	}
	if required("quantity", in.Quantity != nil) {
		if *in.Quantity < 0 {
			fields["quantity"] = "Ensure this value is greater than or equal to 0."
		} else {
			p.Quantity = *in.Quantity
		}
	}
	if in.Image != nil {
		p.Image = strings.TrimSpace(*in.Image)
	}

	if len(fields) > 0 {
		return NewValidationError("validation error", fields)
	}
	return nil
}

func productSnapshot(p model.Product) map[string]interface{} {
	return map[string]interface{}{
		"name":     p.Name,
		"brand":    p.Brand,
		"price":    p.Price,
		"rating":   p.Rating,
		"quantity": p.Quantity,
		"image":    p.Image,
	}
}

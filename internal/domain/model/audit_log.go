package model

import "time"

type AuditAction string

const (
	AuditActionCreateProduct AuditAction = "CREATE_PRODUCT"
	AuditActionUpdateProduct AuditAction = "UPDATE_PRODUCT"
	AuditActionDeleteProduct AuditAction = "DELETE_PRODUCT"
	AuditActionCancelOrder   AuditAction = "CANCEL_ORDER"
	AuditActionReorder       AuditAction = "REORDER"
	AuditActionDeleteOrder   AuditAction = "DELETE_ORDER"
	AuditActionBlockUser     AuditAction = "BLOCK_USER"
	AuditActionUnblockUser   AuditAction = "UNBLOCK_USER"
	AuditActionEditUser      AuditAction = "EDIT_USER"
)

type AuditResourceType string

const (
	AuditResourceProduct AuditResourceType = "product"
	AuditResourceOrder   AuditResourceType = "order"
	AuditResourceUser    AuditResourceType = "user"
)

// AuditLog records who changed what through the admin surface.
// BeforeJSON/AfterJSON hold JSON snapshots of the touched fields.
type AuditLog struct {
	ID           int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorUserID  int64             `gorm:"not null;index" json:"actor_user_id"`
	Action       AuditAction       `gorm:"type:varchar(50);not null;index" json:"action"`
	ResourceType AuditResourceType `gorm:"type:varchar(50);not null;index" json:"resource_type"`
	ResourceID   int64             `gorm:"not null;index" json:"resource_id"`
	BeforeJSON   string            `gorm:"type:text" json:"before_json"`
	AfterJSON    string            `gorm:"type:text" json:"after_json"`
	CreatedAt    time.Time         `gorm:"not null;index" json:"created_at"`
}

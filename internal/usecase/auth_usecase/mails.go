package auth

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shiyas-dx/Project/internal/domain/model"
)

// EncodeUID renders a user id the way activation links carry it.
func EncodeUID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeUID accepts padded and unpadded input.
func DecodeUID(s string) (int64, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid uid %q", s)
	}
	return id, nil
}

func activationLink(frontendURL string, userID int64, token string) string {
	return fmt.Sprintf("%s/activate/%s/%s/", strings.TrimRight(frontendURL, "/"), EncodeUID(userID), token)
}

func activationMail(u model.User, link string, now time.Time) model.EmailOutbox {
	body := fmt.Sprintf(
		"Hi %s,\n\nThanks for signing up at Cortex Store. Activate your account here:\n\n%s\n\nIf you did not create this account you can ignore this message.\n",
		displayName(u), link,
	)
	return model.EmailOutbox{
		ToAddress:     u.Email,
		Subject:       "Activate your Cortex Store account",
		Body:          body,
		Status:        model.EmailStatusPending,
		NextAttemptAt: now,
	}
}

func welcomeMail(u model.User, now time.Time) model.EmailOutbox {
	body := fmt.Sprintf(
		"Hi %s,\n\nYour account has been activated. Welcome to Cortex Store!\n",
		displayName(u),
	)
	return model.EmailOutbox{
		ToAddress:     u.Email,
		Subject:       "Welcome to Cortex Store",
		Body:          body,
		Status:        model.EmailStatusPending,
		NextAttemptAt: now,
	}
}

func displayName(u model.User) string {
	if n := strings.TrimSpace(u.FirstName); n != "" {
		return n
	}
	return u.Username
}

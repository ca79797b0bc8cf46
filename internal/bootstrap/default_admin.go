package bootstrap

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/voyagevr/api/internal/config"
	"github.com/voyagevr/api/internal/modules/model"
)

// EnsureBootstrapAdmin aligns the protected allow-list entry with the
// configured bootstrap email when the service starts. The entry is created
// if absent and promoted to protected if it already exists unprotected, so
// the allow-list can never lose its last operator.
func EnsureBootstrapAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config, log *zap.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Admin.BootstrapEmail))
	if email == "" {
		return nil
	}

	var entry model.AdminEmail
	err := db.WithContext(ctx).Where("email = ?", email).First(&entry).Error

	switch {
	case err == nil:
		if !entry.Protected {
			if uErr := db.WithContext(ctx).Model(&entry).Update("protected", true).Error; uErr != nil {
				return uErr
			}
		}
		log.Sugar().Infow("bootstrap admin exists", "email", email)
		return nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		entry = model.AdminEmail{Email: email, Protected: true}
		if cErr := db.WithContext(ctx).Create(&entry).Error; cErr != nil {
			// another replica may have created it in the meantime
			if errors.Is(cErr, gorm.ErrDuplicatedKey) {
				return nil
			}
			return cErr
		}
		log.Sugar().Infow("bootstrap admin created", "email", email)
		return nil

	default:
		return err
	}
}

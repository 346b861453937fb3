package service

import (
	"github.com/MKhiriev/go-fleet-keeper/internal/config"
	"github.com/MKhiriev/go-fleet-keeper/internal/cookie"
	"github.com/MKhiriev/go-fleet-keeper/internal/crypto"
	"github.com/MKhiriev/go-fleet-keeper/internal/logger"
	"github.com/MKhiriev/go-fleet-keeper/internal/store"
	"github.com/MKhiriev/go-fleet-keeper/internal/utils"
)

// Services aggregates the auth subsystem for the transport layer.
type Services struct {
	UserDirectory  UserDirectory
	SessionService SessionService
	AuthGateway    AuthGateway
	AppInfoService AppInfoService
}

// NewServices wires the services over storages. ownedRecords may be nil
// while no other module owns per-user records.
func NewServices(storages *store.Storages, cfg config.StructuredConfig, ownedRecords OwnedRecordsHook, logger *logger.Logger) (*Services, error) {
	appInfo, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	ids := utils.NewUUIDGenerator()
	users := NewUserDirectory(storages.UserRepository, crypto.NewPasswordHasher(), ids, ownedRecords, logger)
	sessions := NewSessionService(storages.SessionRepository, crypto.NewTokenIssuer(), ids, cfg.Auth.SessionDuration, logger)

	return &Services{
		UserDirectory:  users,
		SessionService: sessions,
		AuthGateway:    NewAuthGateway(users, sessions, cookie.NewCodec(cfg.SecureCookie()), cfg.Auth.LoginPath, logger),
		AppInfoService: appInfo,
	}, nil
}

package providers

import (
	"github.com/samber/do/v2"

	"github.com/emotefeed/emote-server/internal/auth"
	"github.com/emotefeed/emote-server/internal/config"
	"github.com/emotefeed/emote-server/internal/logger"
	"github.com/emotefeed/emote-server/internal/ratelimit"
	"github.com/emotefeed/emote-server/internal/service"
)

// PostRateLimiterHandle wraps the post creation rate limiter with shutdown capability.
type PostRateLimiterHandle struct {
	*ratelimit.KeyedRateLimiter
}

// Shutdown implements do.Shutdownable.
func (h *PostRateLimiterHandle) Shutdown() error {
	h.Stop()
	return nil
}

// ProvidePostRateLimiter provides the per-user post creation rate limiter.
func ProvidePostRateLimiter(i do.Injector) (*PostRateLimiterHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	limiter := ratelimit.PerMinute(cfg.RateLimit.PostsPerMinute)

	log.Info("Post rate limiter configured", "posts_per_minute", cfg.RateLimit.PostsPerMinute)

	return &PostRateLimiterHandle{KeyedRateLimiter: limiter}, nil
}

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvideProfileService provides the user profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, log.Logger), nil
}

// ProvideKarmaService provides the karma ledger service.
func ProvideKarmaService(i do.Injector) (*service.KarmaService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewKarmaService(storeHandle.Store, log.Logger), nil
}

// ProvidePostService provides the post and feed service.
func ProvidePostService(i do.Injector) (*service.PostService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	profileService := do.MustInvoke[*service.ProfileService](i)
	karmaService := do.MustInvoke[*service.KarmaService](i)
	limiterHandle := do.MustInvoke[*PostRateLimiterHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewPostService(
		storeHandle.Store,
		profileService,
		karmaService,
		limiterHandle.KeyedRateLimiter,
		log.Logger,
	), nil
}

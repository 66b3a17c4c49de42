package auth

import (
	"fmt"

	"edusite/internal/config"
	"edusite/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of authorization rules.
// It checks if each policy exists before adding it, making the operation idempotent
// and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, cfg *config.OIDCConfig, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous users can read the public API and log in. Editors manage
	// content; admins additionally manage lookup tables, the cache and
	// contact submissions. The 'admin' role inherits from 'editor'.
	policies := [][]string{
		{"anonymous", "/api/programs", "GET"},
		{"anonymous", "/api/programs/*", "GET"},
		{"anonymous", "/api/blogs", "GET"},
		{"anonymous", "/api/blogs/*", "GET"},
		{"anonymous", "/api/testimonials", "GET"},
		{"anonymous", "/api/faqs", "GET"},
		{"anonymous", "/api/videos", "GET"},
		{"anonymous", "/api/lookups", "GET"},
		{"anonymous", "/api/contact", "POST"},
		{"anonymous", "/api/health", "GET"},
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/auth/logout", "POST"},

		{"editor", "/api/admin/programs", "*"},
		{"editor", "/api/admin/programs/*", "*"},
		{"editor", "/api/admin/blogs", "*"},
		{"editor", "/api/admin/blogs/*", "*"},
		{"editor", "/api/admin/testimonials", "*"},
		{"editor", "/api/admin/testimonials/*", "*"},
		{"editor", "/api/admin/faqs", "*"},
		{"editor", "/api/admin/faqs/*", "*"},
		{"editor", "/api/admin/videos", "*"},
		{"editor", "/api/admin/videos/*", "*"},

		{"admin", "/api/admin/lookups/*", "*"},
		{"admin", "/api/admin/cache/clear", "POST"},
		{"admin", "/api/admin/cache/stats", "GET"},
		{"admin", "/api/admin/contact-messages", "GET"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	roles := [][]string{
		{"editor", "anonymous"},
		{"admin", "editor"},
	}
	for _, r := range roles {
		if has, _ := e.HasRoleForUser(r[0], r[1]); !has {
			if _, err := e.AddRoleForUser(r[0], r[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role %s -> %s", r[0], r[1]))
			}
		}
	}

	// Bind configured back-office accounts to their roles. Accounts are
	// identified by the email claim of their OIDC ID token.
	for _, email := range cfg.EditorEmails {
		if has, _ := e.HasRoleForUser(email, "editor"); !has {
			if _, err := e.AddRoleForUser(email, "editor"); err != nil {
				log.Error(err, fmt.Sprintf("Failed to bind editor %s", email))
			}
		}
	}
	for _, email := range cfg.AdminEmails {
		if has, _ := e.HasRoleForUser(email, "admin"); !has {
			if _, err := e.AddRoleForUser(email, "admin"); err != nil {
				log.Error(err, fmt.Sprintf("Failed to bind admin %s", email))
			}
		}
	}
	log.Info("Policy seeding complete.")
}

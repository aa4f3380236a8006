package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskproof/taskproof/internal/domain"
	"github.com/taskproof/taskproof/internal/repository"
)

type contextKey string

const (
	// ContextKeyStaff is the key for storing the authenticated staff member
	// in request context.
	ContextKeyStaff contextKey = "staff"
)

// AuthMiddleware handles Bearer token authentication. Offline operators use
// the same token scheme; their token is issued at provisioning time after
// the access code is redeemed by the client.
type AuthMiddleware struct {
	staffRepo *repository.StaffRepository
}

// NewAuthMiddleware creates a new AuthMiddleware.
func NewAuthMiddleware(staffRepo *repository.StaffRepository) *AuthMiddleware {
	return &AuthMiddleware{
		staffRepo: staffRepo,
	}
}

// Authenticate validates the Bearer token and adds the staff member to the
// request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "missing authorization header", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			http.Error(w, "invalid authorization header format", http.StatusUnauthorized)
			return
		}

		token := parts[1]
		if token == "" {
			http.Error(w, "missing token", http.StatusUnauthorized)
			return
		}

		staff, err := m.staffRepo.GetByToken(r.Context(), token)
		if err != nil {
			if err == domain.ErrStaffNotFound {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal server error", http.StatusInternalServerError)
			return
		}

		if !staff.IsActive {
			http.Error(w, "staff inactive", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ContextKeyStaff, staff)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetStaffFromContext retrieves the authenticated staff member from request
// context.
func GetStaffFromContext(ctx context.Context) (*domain.Staff, error) {
	staff, ok := ctx.Value(ContextKeyStaff).(*domain.Staff)
	if !ok || staff == nil {
		return nil, domain.ErrStaffNotFound
	}
	return staff, nil
}

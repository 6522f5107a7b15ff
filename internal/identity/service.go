// Package identity implements account and session operations: signup,
// login, logout, profile updates, password changes, and account deletion.
//
// Every operation runs as one turn through the state manager and returns
// either a payload or one of the sentinel errors in internal/common; the
// view layer branches on errors.Is and surfaces a message.
package identity

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskflow/internal/auth"
	"github.com/dmitrijs2005/taskflow/internal/common"
	"github.com/dmitrijs2005/taskflow/internal/config"
	"github.com/dmitrijs2005/taskflow/internal/cryptox"
	"github.com/dmitrijs2005/taskflow/internal/logging"
	"github.com/dmitrijs2005/taskflow/internal/models"
	"github.com/dmitrijs2005/taskflow/internal/state"
)

type Service struct {
	state         *state.Manager
	log           logging.Logger
	secret        []byte
	tokenValidity time.Duration
}

// NewService constructs an identity Service bound to the state manager.
func NewService(m *state.Manager, cfg *config.Config, log logging.Logger) *Service {
	return &Service{
		state:         m,
		log:           log.With("component", "identity"),
		secret:        []byte(cfg.SessionSecret),
		tokenValidity: cfg.SessionTokenValidityDuration,
	}
}

// Signup creates a new user and establishes it as the session. Email and
// username must not collide with an existing user; comparisons are exact,
// case-sensitive string equality.
func (s *Service) Signup(ctx context.Context, fullName, email, username, password string) (*models.User, error) {
	var session *models.User

	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		for i := range st.Users {
			if st.Users[i].Email == email {
				return false, common.ErrDuplicateEmail
			}
		}
		for i := range st.Users {
			if st.Users[i].Username == username {
				return false, common.ErrDuplicateUsername
			}
		}

		salt := cryptox.NewSalt()
		user := models.User{
			ID:           st.NextUserID,
			FullName:     fullName,
			Email:        email,
			Username:     username,
			PasswordHash: cryptox.HashPassword([]byte(password), salt),
			Salt:         salt,
			CreatedAt:    s.state.Now(),
		}
		st.NextUserID++
		st.Users = append(st.Users, user)

		session = user.Public()
		st.CurrentUser = session
		st.SessionToken = s.issueToken(ctx, user.ID)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Login verifies identifier (email or username) plus password and
// establishes the session. Unknown identifiers and wrong passwords are
// indistinguishable: both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, identifier, password string) (*models.User, error) {
	var session *models.User

	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		for i := range st.Users {
			u := &st.Users[i]
			if u.Email != identifier && u.Username != identifier {
				continue
			}
			if !cryptox.VerifyPassword(u.PasswordHash, u.Salt, []byte(password)) {
				return false, common.ErrInvalidCredentials
			}
			session = u.Public()
			st.CurrentUser = session
			st.SessionToken = s.issueToken(ctx, u.ID)
			return true, nil
		}
		return false, common.ErrInvalidCredentials
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Logout clears the session. Logging out without a session is a no-op.
func (s *Service) Logout(ctx context.Context) error {
	return s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		if st.CurrentUser == nil {
			return false, nil
		}
		st.CurrentUser = nil
		st.SessionToken = ""
		return true, nil
	})
}

// CurrentUser returns a copy of the session profile, or nil when not
// authenticated.
func (s *Service) CurrentUser() *models.User {
	var session *models.User
	s.state.View(func(st *state.AppState) {
		if st.CurrentUser != nil {
			c := *st.CurrentUser
			session = &c
		}
	})
	return session
}

// UpdateProfile changes name, email, and username of the authenticated user.
// The new email/username must not collide with a different user. The roster
// entry and the session copy are updated in lockstep.
func (s *Service) UpdateProfile(ctx context.Context, fullName, email, username string) (*models.User, error) {
	var session *models.User

	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		if st.CurrentUser == nil {
			return false, common.ErrNotAuthenticated
		}
		user := st.UserByID(st.CurrentUser.ID)
		if user == nil {
			return false, common.ErrNotFound
		}

		for i := range st.Users {
			if st.Users[i].ID == user.ID {
				continue
			}
			if st.Users[i].Email == email {
				return false, common.ErrDuplicateEmail
			}
			if st.Users[i].Username == username {
				return false, common.ErrDuplicateUsername
			}
		}

		user.FullName = fullName
		user.Email = email
		user.Username = username

		st.CurrentUser.FullName = fullName
		st.CurrentUser.Email = email
		st.CurrentUser.Username = username

		c := *st.CurrentUser
		session = &c
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ChangePassword replaces the stored credential after verifying the current
// one. Confirmation of the new password is the caller's concern.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	return s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		if st.CurrentUser == nil {
			return false, common.ErrNotAuthenticated
		}
		user := st.UserByID(st.CurrentUser.ID)
		if user == nil || !cryptox.VerifyPassword(user.PasswordHash, user.Salt, []byte(current)) {
			return false, common.ErrInvalidCredentials
		}

		salt := cryptox.NewSalt()
		user.Salt = salt
		user.PasswordHash = cryptox.HashPassword([]byte(next), salt)
		return true, nil
	})
}

// DeleteAccount removes the authenticated user, every task it owns, and the
// session, all within a single turn so no partial state is ever observable
// in memory or in the persisted snapshot.
func (s *Service) DeleteAccount(ctx context.Context) error {
	return s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		if st.CurrentUser == nil {
			return false, common.ErrNotAuthenticated
		}
		userID := st.CurrentUser.ID

		users := st.Users[:0]
		for _, u := range st.Users {
			if u.ID != userID {
				users = append(users, u)
			}
		}
		st.Users = users

		tasks := st.Tasks[:0]
		for _, task := range st.Tasks {
			if task.UserID != userID {
				tasks = append(tasks, task)
			}
		}
		st.Tasks = tasks

		st.CurrentUser = nil
		st.SessionToken = ""
		return true, nil
	})
}

// RestoreSession validates the persisted session after a snapshot load.
// A session without a valid token, or referencing a user that no longer
// exists, is cleared. Called once at startup.
func (s *Service) RestoreSession(ctx context.Context) {
	err := s.state.Update(ctx, func(st *state.AppState) (bool, error) {
		if st.CurrentUser == nil {
			if st.SessionToken == "" {
				return false, nil
			}
			st.SessionToken = ""
			return true, nil
		}

		userID, err := auth.GetUserIDFromToken(st.SessionToken, s.secret)
		if err != nil || userID != st.CurrentUser.ID || st.UserByID(userID) == nil {
			s.log.Info(ctx, "discarding persisted session", "reason", "stale or invalid token")
			st.CurrentUser = nil
			st.SessionToken = ""
			return true, nil
		}
		return false, nil
	})
	if err != nil {
		s.log.Warn(ctx, "session restore failed", "error", err)
	}
}

func (s *Service) issueToken(ctx context.Context, userID int64) string {
	token, err := auth.GenerateToken(userID, s.secret, s.tokenValidity)
	if err != nil {
		s.log.Warn(ctx, "could not issue session token", "error", err)
		return ""
	}
	return token
}

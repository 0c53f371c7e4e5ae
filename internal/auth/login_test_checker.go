package auth

import "context"

// LoginTestChecker is used in handler unit tests instead of a real redis-backed checker
type LoginTestChecker struct {
	// token -> user id
	LoggedSessions map[string]string
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: make(map[string]string),
	}
}

func (tc *LoginTestChecker) IsLogged(_ context.Context, token string) (bool, error) {
	_, logged := tc.LoggedSessions[token]
	return logged, nil
}

func (tc *LoginTestChecker) LoggedUserID(_ context.Context, token string) (string, error) {
	userID, logged := tc.LoggedSessions[token]
	if !logged {
		return "", ErrNotLoggedIn
	}
	return userID, nil
}

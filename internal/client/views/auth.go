package views

import (
	"context"

	"github.com/dmitrijs2005/gophfinance/internal/client/guard"
)

const (
	loginFailedMsg  = "Login failed. Check your email and password and try again."
	signupFailedMsg = "Sign up failed. Try again later or use another email."
)

// LoginView signs an existing user in.
type LoginView struct {
	Deps
	auth AuthAPI
}

func NewLoginView(d Deps, auth AuthAPI) *LoginView {
	d.Log = d.Log.With("view", "login")
	return &LoginView{Deps: d, auth: auth}
}

// Submit validates the form, logs in, stores the token and moves to home.
// Every failure after validation reads the same to the user.
func (v *LoginView) Submit(ctx context.Context, email, password string) error {
	if err := firstErr(validateEmail(email), validatePassword("password", password)); err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}

	token, err := v.auth.Login(ctx, email, password)
	if err == nil {
		err = v.Session.SetToken(ctx, token)
	}
	if err != nil {
		v.Log.Warn(ctx, "login failed", "email", email, "error", err)
		v.Notify.Error(ctx, loginFailedMsg)
		return ErrLoginFailed
	}

	v.Notify.Success(ctx, "Welcome back!")
	v.Nav.Navigate(ctx, guard.RouteHome)
	return nil
}

// SignupView registers a user and signs them in.
type SignupView struct {
	Deps
	auth AuthAPI
}

func NewSignupView(d Deps, auth AuthAPI) *SignupView {
	d.Log = d.Log.With("view", "signup")
	return &SignupView{Deps: d, auth: auth}
}

// Submit checks the form, including that both passwords match, before
// anything is sent.
func (v *SignupView) Submit(ctx context.Context, email, password, confirm string) error {
	err := firstErr(validateEmail(email), validatePassword("password", password))
	if err == nil && password != confirm {
		err = invalid("passwordConfirm", "does not match password")
	}
	if err != nil {
		v.Notify.Error(ctx, err.Error())
		return err
	}

	token, err := v.auth.Register(ctx, email, password)
	if err == nil {
		err = v.Session.SetToken(ctx, token)
	}
	if err != nil {
		v.Log.Warn(ctx, "sign up failed", "email", email, "error", err)
		v.Notify.Error(ctx, signupFailedMsg)
		return ErrSignupFailed
	}

	v.Notify.Success(ctx, "Account created.")
	v.Nav.Navigate(ctx, guard.RouteHome)
	return nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

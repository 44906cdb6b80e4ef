package api

import (
	"context"
	"net/http"
)

type LoginInput struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (c *Client) Login(ctx context.Context, input LoginInput) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/login", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type RegisterInput struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func (c *Client) Register(ctx context.Context, input RegisterInput) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/register", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) VerifyEmail(ctx context.Context, token string) (*MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"token": token}
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/verify-email", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ResendVerification(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"email": email}
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/resend-verification", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ForgotPassword(ctx context.Context, email string) (*MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"email": email}
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/forgot-password", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ValidateResetToken(ctx context.Context, token string) (*MessageResponse, error) {
	var out MessageResponse
	body := map[string]string{"token": token}
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/validate-reset-token", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ResetPasswordInput struct {
	Token           string `json:"token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (c *Client) ResetPassword(ctx context.Context, input ResetPasswordInput) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.do(ctx, NamespaceUser, http.MethodPost, "/auth/reset-password", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type AdminLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AdminLoginResponse struct {
	Token string `json:"token"`
	Admin Admin  `json:"admin"`
}

func (c *Client) AdminLogin(ctx context.Context, input AdminLoginInput) (*AdminLoginResponse, error) {
	var out AdminLoginResponse
	if err := c.do(ctx, NamespaceAdmin, http.MethodPost, "/auth/login", nil, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

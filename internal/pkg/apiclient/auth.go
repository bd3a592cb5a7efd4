package apiclient

import (
	"context"
	"errors"
	"fmt"

	"github.com/lalithaAmmu28/payrollManagementSystem/internal/apperrors"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/auth"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/employee"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/domain/user"
	"github.com/lalithaAmmu28/payrollManagementSystem/internal/pkg/payload"
)

// AuthClient implements auth.AuthRepository. It must be built without a
// token source.
type AuthClient struct {
	client *Client
}

func NewAuthClient(client *Client) auth.AuthRepository {
	return &AuthClient{client: client}
}

func (a *AuthClient) Login(ctx context.Context, req auth.LoginRequest) (auth.Credentials, error) {
	data, err := a.client.Post(ctx, "/auth/login", req)
	if err != nil {
		// The backend answers bad credentials with 400 or 401
		if errors.Is(err, apperrors.ErrValidation) || errors.Is(err, apperrors.ErrAuth) {
			return auth.Credentials{}, fmt.Errorf("%w: %w", auth.ErrInvalidCredentials, err)
		}
		return auth.Credentials{}, err
	}

	obj, ok := payload.DecodeObject(data)
	if !ok {
		return auth.Credentials{}, malformed(errors.New("login payload is not an object"))
	}
	token := payload.String(obj, "accessToken", "token", "access_token")
	if token == "" {
		return auth.Credentials{}, malformed(errors.New("login payload has no access token"))
	}

	creds := auth.Credentials{
		AccessToken: token,
		TokenType:   payload.String(obj, "tokenType", "token_type"),
	}
	if creds.TokenType == "" {
		creds.TokenType = "Bearer"
	}

	if raw, ok := payload.Pick(obj, "user"); ok {
		u, _ := payload.DecodeObject(raw)
		creds.User = user.User{
			ID:       payload.String(u, "userId", "id"),
			Username: payload.String(u, "username"),
			Email:    payload.String(u, "email"),
		}
		role, err := user.ParseRole(payload.String(u, "role"))
		if err != nil {
			return auth.Credentials{}, malformed(err)
		}
		creds.User.Role = role
	} else {
		return auth.Credentials{}, malformed(errors.New("login payload has no user"))
	}
	return creds, nil
}

// EmployeeClient implements employee.EmployeeRepository.
type EmployeeClient struct {
	client *Client
}

func NewEmployeeClient(client *Client) employee.EmployeeRepository {
	return &EmployeeClient{client: client}
}

func (e *EmployeeClient) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	data, err := e.client.Post(ctx, "/employees", req)
	if err != nil {
		return employee.Employee{}, err
	}

	obj, ok := payload.DecodeObject(data)
	if !ok {
		// Created but not echoed; report what was submitted
		return employee.Employee{FirstName: req.FirstName, LastName: req.LastName, Email: req.Email}, nil
	}
	return employee.Employee{
		ID:             payload.String(obj, "employeeId", "id"),
		UserID:         payload.String(obj, "userId"),
		FirstName:      payload.String(obj, "firstName"),
		LastName:       payload.String(obj, "lastName"),
		Email:          payload.String(obj, "email"),
		DepartmentName: payload.String(obj, "departmentName"),
		JobTitle:       payload.String(obj, "jobTitle"),
	}, nil
}

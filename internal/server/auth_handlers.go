package server

import (
	"fmt"
	"io"
	"time"

	"blogify/internal/cache"
	"blogify/internal/models"
	"blogify/internal/service"
	"blogify/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// readFormFile reads an optional multipart file field. The second return is
// the original filename; ok is false when the field is absent.
func readFormFile(c *fiber.Ctx, field string) (content []byte, filename string, ok bool, err error) {
	header, ferr := c.FormFile(field)
	if ferr != nil {
		return nil, "", false, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, "", false, err
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		return nil, "", false, err
	}
	return content, header.Filename, true, nil
}

// Signup handles POST /user/signup
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		FullName string `json:"full_name" form:"full_name"`
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.FullName == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Full name, email, and password are required"))
	}
	if err := validation.ValidateFullName(req.FullName); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewValidationError("User already exists"))
	}

	// Optional avatar upload; absence means the default avatar.
	avatarURL := s.config.DefaultAvatarURL
	if content, filename, ok, ferr := readFormFile(c, "avatar"); ferr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Could not read avatar upload"))
	} else if ok {
		url, uerr := s.uploadService.Save(service.UploadInput{
			Kind:     service.UploadKindAvatar,
			Filename: filename,
			Content:  content,
		})
		if uerr != nil {
			return respondServiceError(c, uerr)
		}
		avatarURL = url
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		FullName:        req.FullName,
		Email:           req.Email,
		Password:        string(hashedPassword),
		Role:            models.RoleUser,
		ProfileImageURL: avatarURL,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return respondServiceError(c, createErr)
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Signin handles POST /user/signin. Failures never reveal whether the email
// or the password was at fault.
func (s *Server) Signin(c *fiber.Ctx) error {
	var req struct {
		Email    string `json:"email" form:"email"`
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByEmail(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}
	if user == nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect Email or Password"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Incorrect Email or Password"))
	}

	token, err := s.generateToken(user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	s.setAuthCookie(c, token)

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles GET /user/logout. The token's jti is blacklisted until its
// natural expiry and the cookie is cleared.
func (s *Server) Logout(c *fiber.Ctx) error {
	tokenString := c.Cookies(tokenCookieName)
	if tokenString != "" {
		if jti, ttl, ok := s.revocationInfo(tokenString); ok {
			if err := cache.RevokeToken(c.Context(), jti, ttl); err != nil {
				return respondServiceError(c, models.NewInternalError(err))
			}
		}
	}
	s.clearAuthCookie(c)

	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

// revocationInfo extracts the jti and remaining lifetime from a token the
// server itself issued.
func (s *Server) revocationInfo(tokenString string) (string, time.Duration, bool) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", 0, false
	}
	jti, ok := claims["jti"].(string)
	if !ok || jti == "" {
		return "", 0, false
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", 0, false
	}
	ttl := time.Until(time.Unix(int64(exp), 0))
	if ttl <= 0 {
		return "", 0, false
	}
	return jti, ttl, true
}

// ForgotPassword handles POST /user/forgot-password. The response is the
// same whether or not the email belongs to an account.
func (s *Server) ForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email" form:"email"`
	}
	if err := c.BodyParser(&req); err != nil || req.Email == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Email is required"))
	}

	token, err := s.userService.IssueResetToken(c.Context(), req.Email)
	if err != nil {
		return respondServiceError(c, err)
	}

	resp := fiber.Map{
		"message": "If that email is registered, a reset link has been sent",
	}
	// There is no mailer; outside production the token is returned so the
	// flow stays usable end to end.
	if token != "" && !s.config.IsProduction() {
		resp["reset_token"] = token
	}
	return c.JSON(resp)
}

// ResetPassword handles POST /user/reset-password/:token.
func (s *Server) ResetPassword(c *fiber.Ctx) error {
	var req struct {
		Password string `json:"password" form:"password"`
	}
	if err := c.BodyParser(&req); err != nil || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Password is required"))
	}

	if err := s.userService.ResetPassword(c.Context(), c.Params("token"), req.Password); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Password has been reset",
	})
}

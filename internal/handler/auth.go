package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"expense-tracker/internal/middleware"
	"expense-tracker/internal/models"
	"expense-tracker/internal/repository"
	"expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler 负责登录/注册相关接口
type AuthHandler struct {
	Users     *repository.UserRepository
	JWTSecret string
	TokenTTL  time.Duration
}

// NewAuthHandler 构造函数
func NewAuthHandler(users *repository.UserRepository, jwtSecret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 7 * 24
	}
	return &AuthHandler{
		Users:     users,
		JWTSecret: jwtSecret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

// ---------- 注册 ----------

type registerReq struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Please enter all fields")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		util.Error(c, http.StatusBadRequest, "Please enter all fields")
		return
	}

	if req.Password != req.ConfirmPassword {
		util.Error(c, http.StatusBadRequest, "Passwords do not match")
		return
	}

	if len(req.Password) < 6 {
		util.Error(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.ServerError(c, "register: hash password", err)
		return
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.Users.Create(&user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			util.Error(c, http.StatusBadRequest, "User already exists")
		} else {
			util.ServerError(c, "register: create user", err)
		}
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.ServerError(c, "register: sign token", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// ---------- 登录 ----------

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Please enter all fields")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "Please enter all fields")
		return
	}

	// 查不到用户和密码错误返回同一个提示，避免泄露哪一步失败
	user, err := h.Users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusBadRequest, "Invalid credentials")
		} else {
			util.ServerError(c, "login: find user", err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, user.ID, h.TokenTTL)
	if err != nil {
		util.ServerError(c, "login: sign token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
		},
	})
}

// ---------- 当前用户 ----------

// Me 返回当前登录用户信息（需要经过 AuthMiddleware）
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"email":      user.Email,
		"created_at": user.CreatedAt,
	})
}

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
)

// ExpenseHandler 负责支出记录相关接口
type ExpenseHandler struct {
	Expenses *repository.ExpenseRepository
}

func NewExpenseHandler(expenses *repository.ExpenseRepository) *ExpenseHandler {
	return &ExpenseHandler{Expenses: expenses}
}

// ---------- 请求结构 ----------

// Create 和 Update 用同一套字段：全量替换，逐项校验。
type expenseReq struct {
	Amount      *util.Cents `json:"amount"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
}

// validate 校验请求并返回落库用的字段值。
// Date 为空时返回 fallback：新建时传当前时间，修改时传已存的日期。
func (req *expenseReq) validate(fallback time.Time) (util.Cents, string, string, time.Time, error) {
	if req.Amount == nil {
		return 0, "", "", time.Time{}, errors.New("Amount is required")
	}
	if err := util.ValidateAmount(*req.Amount); err != nil {
		return 0, "", "", time.Time{}, err
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		return 0, "", "", time.Time{}, errors.New("Category is required")
	}
	if !models.ValidCategory(category) {
		return 0, "", "", time.Time{}, errors.New("Invalid category")
	}

	description := strings.TrimSpace(req.Description)
	if err := util.ValidateDescription(description); err != nil {
		return 0, "", "", time.Time{}, err
	}

	occurredAt := fallback
	if req.Date != "" {
		t, err := util.ParseDate(req.Date)
		if err != nil {
			return 0, "", "", time.Time{}, errors.New("Date must be a valid date")
		}
		occurredAt = t
	}

	return *req.Amount, category, description, occurredAt, nil
}

// ---------- 记一笔 ----------

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	// 新建时不传日期默认当前时间（记账时间即消费时间）
	amount, category, description, occurredAt, err := req.validate(time.Now().UTC())
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	expense := models.Expense{
		OwnerID:     user.ID,
		AmountCent:  amount,
		Category:    category,
		Description: description,
		OccurredAt:  occurredAt,
	}

	if err := h.Expenses.Create(&expense); err != nil {
		util.ServerError(c, "expense: create", err)
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// ---------- 列表 ----------

// ListExpenses 返回当前用户的全部支出，按消费日期倒序。
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	expenses, err := h.Expenses.ListByOwner(user.ID)
	if err != nil {
		util.ServerError(c, "expense: list", err)
		return
	}
	if expenses == nil {
		expenses = make([]models.Expense, 0)
	}

	c.JSON(http.StatusOK, expenses)
}

// ---------- 单条查询 ----------

func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	expense, err := h.Expenses.FindByOwner(user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Expense not found")
		} else {
			util.ServerError(c, "expense: get", err)
		}
		return
	}

	c.JSON(http.StatusOK, expense)
}

// ---------- 修改 ----------

// UpdateExpense 全量替换一条记录的业务字段（只能修改自己的）。
// id 和 created_at 不可变，updated_at 由存储层刷新。
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	var req expenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	expense, err := h.Expenses.FindByOwner(user.ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Expense not found")
		} else {
			util.ServerError(c, "expense: load for update", err)
		}
		return
	}

	// 不传日期则保留原来的消费日期，不会被改成今天
	amount, category, description, occurredAt, err := req.validate(expense.OccurredAt)
	if err != nil {
		util.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	expense.AmountCent = amount
	expense.Category = category
	expense.Description = description
	expense.OccurredAt = occurredAt

	if err := h.Expenses.Update(expense); err != nil {
		util.ServerError(c, "expense: update", err)
		return
	}

	c.JSON(http.StatusOK, expense)
}

// ---------- 删除 ----------

// DeleteExpense 永久删除一条记录，没有回收站。
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	if err := h.Expenses.DeleteByOwner(user.ID, c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			util.Error(c, http.StatusNotFound, "Expense not found")
		} else {
			util.ServerError(c, "expense: delete", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense removed"})
}

package handler

import (
	"net/http"

	"expense-tracker/internal/middleware"
	"expense-tracker/internal/stats"
	"expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// GetStats 返回当前用户的汇总统计。
// The whole read either succeeds or fails: a storage error aborts the
// request instead of returning a partial summary.
func (h *ExpenseHandler) GetStats(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, "No token provided")
		return
	}

	expenses, err := h.Expenses.ListByOwner(user.ID)
	if err != nil {
		util.ServerError(c, "stats: list expenses", err)
		return
	}

	c.JSON(http.StatusOK, stats.Compute(expenses))
}

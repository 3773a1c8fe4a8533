package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/virtualcode/readingvault/internal/services"
)

type LendingsController struct {
	lendings *services.LendingService
}

func NewLendingsController(service *services.LendingService) *LendingsController {
	return &LendingsController{lendings: service}
}

type lendRequest struct {
	BorrowerName       string     `json:"borrower_name" binding:"required"`
	BorrowerContact    string     `json:"borrower_contact"`
	ExpectedReturnDate *time.Time `json:"expected_return_date"`
	Notes              string     `json:"notes"`
}

func (controller *LendingsController) GetLendingHistory(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	history, err := controller.lendings.GetLendingHistory(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"lendings": history, "count": len(history)})
}

func (controller *LendingsController) GetCurrentLending(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	current, err := controller.lendings.GetCurrentLending(id)
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if current == nil {
		c.IndentedJSON(http.StatusNotFound, gin.H{"error": "book is not lent out"})
		return
	}
	c.IndentedJSON(http.StatusOK, current)
}

func (controller *LendingsController) LendBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req lendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	lending, err := controller.lendings.LendBook(id, req.BorrowerName, req.BorrowerContact, req.ExpectedReturnDate, req.Notes)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusCreated, lending)
}

func (controller *LendingsController) ReturnBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	lending, err := controller.lendings.ReturnBook(id)
	if err != nil {
		serviceError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, lending)
}

func (controller *LendingsController) GetOverdueLendings(c *gin.Context) {
	overdue, err := controller.lendings.GetOverdueLendings()
	if err != nil {
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"lendings": overdue, "count": len(overdue)})
}

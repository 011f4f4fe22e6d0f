// Package v1 contains the handlers for version 1 of the API.
package v1

import (
	"time"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/finance-tracker/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	Store store.Store
	Auth  *auth.Service

	// Now returns the reference time for bill statuses. Defaults to time.Now.
	Now func() time.Time
}

func (co Controller) now() time.Time {
	if co.Now == nil {
		return time.Now()
	}
	return co.Now()
}

// session returns the session that the auth middleware stored for the request.
func session(c *gin.Context) auth.Session {
	return c.MustGet(auth.ContextKey).(auth.Session)
}

// owner returns the ID of the authenticated user.
func owner(c *gin.Context) uuid.UUID {
	return session(c).UserID
}

// getID parses the ID of the resource from the URL.
func getID(c *gin.Context) (uuid.UUID, error) {
	var uri URIID
	if err := c.ShouldBindUri(&uri); err != nil {
		return uuid.Nil, httputil.ErrInvalidUUID
	}
	return uri.ID.UUID, nil
}

// allTransactions returns all transactions of the authenticated user,
// latest first.
func (co Controller) allTransactions(c *gin.Context) ([]models.Transaction, error) {
	transactions, _, err := co.Store.Transactions().Search(c.Request.Context(), owner(c), store.TransactionQuery{Sort: store.SortLatest})
	return transactions, err
}

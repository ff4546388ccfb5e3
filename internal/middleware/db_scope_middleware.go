package middleware

import (
	"messenger-api/pkg/database"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBScope gives each request at most one pooled connection, acquired on first use and
// released when the handler chain unwinds, panics included.
func DBScope(pool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		scope := database.NewScope(pool)
		defer scope.Release()
		c.Request = c.Request.WithContext(database.WithScope(c.Request.Context(), scope))
		c.Next()
	}
}

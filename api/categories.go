package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gavel/auction"
)

func (impl *ServerImpl) listCategories(c *gin.Context) {
	const op = "listCategories"
	pageHits.WithLabelValues("categories").Inc()
	categories, err := impl.svc.ListCategories(c.Request.Context())
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to list categories, err=%w", op, err))
		return
	}
	c.HTML(http.StatusOK, "categories.html", gin.H{
		"Categories": categories,
		"User":       impl.currentUser(c),
	})
}

func (impl *ServerImpl) showCategory(c *gin.Context) {
	const op = "showCategory"
	pageHits.WithLabelValues("category").Inc()
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("malformed category id %q: %w", c.Param("id"), auction.ErrNotFound))
		return
	}
	category, listings, err := impl.svc.ListByCategory(c.Request.Context(), id)
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to list category, err=%w", op, err))
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    category.Name,
		"Listings": listings,
		"User":     impl.currentUser(c),
	})
}

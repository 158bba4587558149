package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gavel/auction"
)

func (impl *ServerImpl) listingID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("malformed listing id %q: %w", c.Param("id"), auction.ErrNotFound))
		return uuid.Nil, false
	}
	return id, true
}

// showListing renders the detail page. A POST carries a watchlist toggle
// ("addwatchlist" or "removewatchlist" submit button), applied before the
// page is rendered.
func (impl *ServerImpl) showListing(c *gin.Context) {
	const op = "showListing"
	pageHits.WithLabelValues("listing").Inc()
	id, ok := impl.listingID(c)
	if !ok {
		return
	}

	var toggle auction.WatchAction
	if c.Request.Method == http.MethodPost {
		if _, found := c.GetPostForm("addwatchlist"); found {
			toggle = auction.WatchAdd
		} else if _, found := c.GetPostForm("removewatchlist"); found {
			toggle = auction.WatchRemove
		}
	}

	view, err := impl.svc.ViewListing(c.Request.Context(), id, impl.callerID(c), toggle)
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to view listing, err=%w", op, err))
		return
	}
	impl.renderListing(c, view, gin.H{})
}

// renderListing draws the detail page; extra overrides the form state, used
// to preserve attempted input after a rejected bid or comment.
func (impl *ServerImpl) renderListing(c *gin.Context, view *auction.ListingView, extra gin.H) {
	data := gin.H{
		"Listing":            view.Listing,
		"Comments":           view.Comments,
		"CurrentBid":         view.CurrentBid,
		"InWatchlist":        view.InWatchlist,
		"CanClose":           view.CanClose,
		"WinnerAnnouncement": view.WinnerAnnouncement,
		"User":               impl.currentUser(c),
		"Error":              "",
		"BidPrice":           "",
		"CommentText":        "",
	}
	for k, v := range extra {
		data[k] = v
	}
	c.HTML(http.StatusOK, "listing.html", data)
}

func (impl *ServerImpl) placeBid(c *gin.Context) {
	const op = "placeBid"
	id, ok := impl.listingID(c)
	if !ok {
		return
	}
	caller := impl.callerID(c)
	price := c.PostForm("price")

	_, err := impl.svc.PlaceBid(c.Request.Context(), caller, id, price)
	if ve := auction.AsValidation(err); ve != nil {
		// Rejected bid: same page, error message, attempted price kept.
		view, viewErr := impl.svc.ViewListing(c.Request.Context(), id, caller, "")
		if viewErr != nil {
			impl.renderDomainError(c, fmt.Errorf("[%s] Fail to view listing, err=%w", op, viewErr))
			return
		}
		impl.renderListing(c, view, gin.H{"Error": ve.Message, "BidPrice": price})
		return
	}
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to place bid, err=%w", op, err))
		return
	}
	bidsAccepted.Inc()
	c.Redirect(http.StatusFound, "/listing/"+id.String())
}

func (impl *ServerImpl) addComment(c *gin.Context) {
	const op = "addComment"
	id, ok := impl.listingID(c)
	if !ok {
		return
	}
	caller := impl.callerID(c)
	text := c.PostForm("text")

	_, err := impl.svc.AddComment(c.Request.Context(), caller, id, text)
	if ve := auction.AsValidation(err); ve != nil {
		view, viewErr := impl.svc.ViewListing(c.Request.Context(), id, caller, "")
		if viewErr != nil {
			impl.renderDomainError(c, fmt.Errorf("[%s] Fail to view listing, err=%w", op, viewErr))
			return
		}
		impl.renderListing(c, view, gin.H{"Error": ve.Message, "CommentText": text})
		return
	}
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to add comment, err=%w", op, err))
		return
	}
	c.Redirect(http.StatusFound, "/listing/"+id.String())
}

func (impl *ServerImpl) closeListing(c *gin.Context) {
	const op = "closeListing"
	id, ok := impl.listingID(c)
	if !ok {
		return
	}
	if err := impl.svc.CloseListing(c.Request.Context(), impl.callerID(c), id); err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to close listing, err=%w", op, err))
		return
	}
	c.Redirect(http.StatusFound, "/listing/"+id.String())
}

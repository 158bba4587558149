package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	internalS3 "gavel/adapters/s3"
	"gavel/auction"
	"gavel/models"
)

// maxImageBytes caps listing image uploads.
const maxImageBytes = 5 << 20

func (impl *ServerImpl) index(c *gin.Context) {
	const op = "index"
	pageHits.WithLabelValues("index").Inc()
	listings, err := impl.svc.ListActive(c.Request.Context())
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to list active listings, err=%w", op, err))
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    "Active Listings",
		"Listings": listings,
		"User":     impl.currentUser(c),
	})
}

func (impl *ServerImpl) watchlist(c *gin.Context) {
	const op = "watchlist"
	pageHits.WithLabelValues("watchlist").Inc()
	listings, err := impl.svc.ListWatchlist(c.Request.Context(), impl.callerID(c))
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to list watchlist, err=%w", op, err))
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Title":    "My Watchlist",
		"Listings": listings,
		"User":     impl.currentUser(c),
	})
}

func (impl *ServerImpl) showCreateListing(c *gin.Context) {
	const op = "showCreateListing"
	pageHits.WithLabelValues("create").Inc()
	if impl.callerID(c) == uuid.Nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}
	categories, err := impl.svc.ListCategories(c.Request.Context())
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to list categories, err=%w", op, err))
		return
	}
	c.HTML(http.StatusOK, "create.html", gin.H{
		"Categories": categories,
		"User":       impl.currentUser(c),
		"Message":    "",
		"Form": gin.H{
			"Title":       "",
			"Description": "",
			"Starting":    "",
			"Category":    "",
			"NewCategory": "",
		},
	})
}

func (impl *ServerImpl) createListing(c *gin.Context) {
	const op = "createListing"
	caller := impl.callerID(c)
	if caller == uuid.Nil {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	imageURL, err := impl.uploadListingImage(c, caller)
	if err != nil {
		var reachLimit *internalS3.ReachLimitError
		if errors.As(err, &reachLimit) || errors.Is(err, errInsecureImage) || errors.Is(err, errUploadRateLimited) {
			impl.rerenderCreate(c, err.Error())
			return
		}
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to upload image, err=%w", op, err))
		return
	}

	input := auction.CreateListingInput{
		Title:           c.PostForm("title"),
		Description:     c.PostForm("description"),
		StartingPrice:   c.PostForm("starting"),
		ImageURL:        imageURL,
		CategoryID:      c.PostForm("category"),
		NewCategoryName: c.PostForm("newcategory"),
	}
	listing, err := impl.svc.CreateListing(c.Request.Context(), caller, input)
	if ve := auction.AsValidation(err); ve != nil {
		impl.rerenderCreate(c, ve.Message)
		return
	}
	if err != nil {
		impl.renderDomainError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/listing/"+listing.ID.String())
}

// rerenderCreate shows the create form again with the attempted values.
func (impl *ServerImpl) rerenderCreate(c *gin.Context, message string) {
	categories, err := impl.svc.ListCategories(c.Request.Context())
	if err != nil {
		impl.renderDomainError(c, err)
		return
	}
	c.HTML(http.StatusOK, "create.html", gin.H{
		"Categories": categories,
		"User":       impl.currentUser(c),
		"Message":    message,
		"Form": gin.H{
			"Title":       c.PostForm("title"),
			"Description": c.PostForm("description"),
			"Starting":    c.PostForm("starting"),
			"Category":    c.PostForm("category"),
			"NewCategory": c.PostForm("newcategory"),
		},
	})
}

var (
	errInsecureImage     = errors.New("image type is not allowed")
	errUploadRateLimited = errors.New("image upload limit reached, try again later")
)

// uploadListingImage stores an optional multipart image and returns its
// public URL. Returns "" when no file was sent or no bucket is configured.
func (impl *ServerImpl) uploadListingImage(c *gin.Context, caller uuid.UUID) (string, error) {
	const op = "uploadListingImage"
	fileHeader, err := c.FormFile("image")
	if err != nil || impl.s3Operator == nil {
		return "", nil
	}

	if impl.config.S3.RateLimitPerHour > 0 {
		var uploadedCount int64
		result := impl.db.WithContext(c.Request.Context()).
			Model(&models.Image{}).
			Where("uploader_id = ? AND created_at > ?", caller, time.Now().Add(-1*time.Hour)).
			Count(&uploadedCount)
		if result.Error != nil {
			return "", fmt.Errorf("[%s] Fail to count uploaded images, err=%w", op, result.Error)
		}
		if uploadedCount >= impl.config.S3.RateLimitPerHour {
			return "", errUploadRateLimited
		}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("[%s] Fail to open uploaded file, err=%w", op, err)
	}
	defer file.Close()
	content, err := io.ReadAll(internalS3.NewMaxSizeReader(file, maxImageBytes))
	if err != nil {
		return "", err
	}
	mimeType := http.DetectContentType(content)
	secure, ext := internalS3.CheckSecureImageAndGetExtension(mimeType)
	if !secure {
		return "", fmt.Errorf("%w: %s", errInsecureImage, mimeType)
	}

	url, err := impl.s3Operator.Upload(c.Request.Context(), uuid.New().String()+"."+ext, mimeType, content)
	if err != nil {
		return "", err
	}
	image := models.Image{UploaderID: caller, URL: url}
	if result := impl.db.WithContext(c.Request.Context()).Create(&image); result.Error != nil {
		return "", fmt.Errorf("[%s] Fail to record image, err=%w", op, result.Error)
	}
	return url, nil
}

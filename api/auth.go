package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"gavel/auction"
)

func (impl *ServerImpl) showLogin(c *gin.Context) {
	pageHits.WithLabelValues("login").Inc()
	c.HTML(http.StatusOK, "login.html", gin.H{"Message": "", "Username": ""})
}

func (impl *ServerImpl) login(c *gin.Context) {
	const op = "login"
	user, err := impl.svc.Authenticate(c.Request.Context(), c.PostForm("username"), c.PostForm("password"))
	if errors.Is(err, auction.ErrUnauthorized) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Message":  "Invalid username and/or password.",
			"Username": c.PostForm("username"),
		})
		return
	}
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to authenticate, err=%w", op, err))
		return
	}
	if err := impl.signIn(c, user.ID); err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to start session, err=%w", op, err))
		return
	}
	c.Redirect(http.StatusFound, "/")
}

func (impl *ServerImpl) logout(c *gin.Context) {
	impl.signOut(c)
	c.Redirect(http.StatusFound, "/")
}

func (impl *ServerImpl) showRegister(c *gin.Context) {
	pageHits.WithLabelValues("register").Inc()
	c.HTML(http.StatusOK, "register.html", gin.H{"Message": "", "Form": auction.RegisterInput{}})
}

func (impl *ServerImpl) register(c *gin.Context) {
	const op = "register"
	input := auction.RegisterInput{
		Username:     c.PostForm("username"),
		Email:        c.PostForm("email"),
		Password:     c.PostForm("password"),
		Confirmation: c.PostForm("confirmation"),
		FirstName:    c.PostForm("first_name"),
		LastName:     c.PostForm("last_name"),
	}
	user, err := impl.svc.Register(c.Request.Context(), input)
	if ve := auction.AsValidation(err); ve != nil {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Message": ve.Message,
			"Form":    input,
		})
		return
	}
	if errors.Is(err, auction.ErrConflict) {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Message": "Username already taken.",
			"Form":    input,
		})
		return
	}
	if err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to register, err=%w", op, err))
		return
	}
	usersRegistered.Inc()
	if err := impl.signIn(c, user.ID); err != nil {
		impl.renderDomainError(c, fmt.Errorf("[%s] Fail to start session, err=%w", op, err))
		return
	}
	c.Redirect(http.StatusFound, "/")
}

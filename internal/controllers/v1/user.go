package v1

import (
	"errors"
	"net/http"

	"github.com/finance-tracker/backend/internal/auth"
	"github.com/finance-tracker/backend/internal/httputil"
	"github.com/finance-tracker/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes registers the routes for users. Signup and login are
// registered on public, all other routes on authenticated.
func (co Controller) RegisterUserRoutes(public, authenticated *gin.RouterGroup) {
	{
		public.OPTIONS("/signup", co.OptionsUserSignup)
		public.POST("/signup", co.Signup)
		public.OPTIONS("/login", co.OptionsUserLogin)
		public.POST("/login", co.Login)
	}

	{
		authenticated.OPTIONS("", co.OptionsUser)
		authenticated.GET("", co.GetUser)
		authenticated.DELETE("", co.DeleteUser)
		authenticated.OPTIONS("/logout", co.OptionsUserLogout)
		authenticated.POST("/logout", co.Logout)
	}
}

// OptionsUserSignup returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Router			/v1/user/signup [options]
func (co Controller) OptionsUserSignup(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsUserLogin returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Router			/v1/user/login [options]
func (co Controller) OptionsUserLogin(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsUserLogout returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/user/logout [options]
func (co Controller) OptionsUserLogout(c *gin.Context) {
	httputil.OptionsPost(c)
}

// OptionsUser returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			Users
//	@Success		204
//	@Security		BearerAuth
//	@Router			/v1/user [options]
func (co Controller) OptionsUser(c *gin.Context) {
	httputil.OptionsGetDelete(c)
}

// Signup creates a user and returns a token for them
//
//	@Summary		Sign up
//	@Description	Creates a new user and returns a bearer token for them
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	SessionResponse
//	@Failure		400		{object}	SessionResponse
//	@Failure		500		{object}	SessionResponse
//	@Param			user	body		UserSignup	true	"User"
//	@Router			/v1/user/signup [post]
func (co Controller) Signup(c *gin.Context) {
	var signup UserSignup
	if err := httputil.BindData(c, &signup); err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	hash, err := auth.HashPassword(signup.Password)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	user := models.User{
		Username:     signup.Username,
		Email:        signup.Email,
		PasswordHash: hash,
	}

	if err := co.Store.Users().Create(c.Request.Context(), &user); err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	co.respondSession(c, http.StatusCreated, user)
}

// Login returns a token for the user
//
//	@Summary		Log in
//	@Description	Verifies the credentials and returns a bearer token
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	SessionResponse
//	@Failure		400			{object}	SessionResponse
//	@Failure		401			{object}	SessionResponse
//	@Failure		500			{object}	SessionResponse
//	@Param			credentials	body		UserLogin	true	"Credentials"
//	@Router			/v1/user/login [post]
func (co Controller) Login(c *gin.Context) {
	var login UserLogin
	if err := httputil.BindData(c, &login); err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	user, err := co.Store.Users().GetByEmail(c.Request.Context(), login.Email)
	if errors.Is(err, models.ErrResourceNotFound) {
		err = auth.ErrInvalidCredentials
	}

	if err == nil {
		err = auth.CheckPassword(user.PasswordHash, login.Password)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), SessionResponse{Error: &e})
		return
	}

	co.respondSession(c, http.StatusOK, user)
}

func (co Controller) respondSession(c *gin.Context, code int, user models.User) {
	token, err := co.Auth.Issue(user.ID)
	if err != nil {
		e := models.ErrGeneral.Error()
		c.JSON(http.StatusInternalServerError, SessionResponse{Error: &e})
		return
	}

	c.JSON(code, SessionResponse{Data: &SessionData{
		User:  newUser(user),
		Token: token,
	}})
}

// Logout revokes the token used for the request
//
//	@Summary		Log out
//	@Description	Revokes the bearer token used for the request
//	@Tags			Users
//	@Success		204
//	@Failure		401	{object}	httpError
//	@Security		BearerAuth
//	@Router			/v1/user/logout [post]
func (co Controller) Logout(c *gin.Context) {
	co.Auth.Revoke(session(c))
	c.Status(http.StatusNoContent)
}

// GetUser returns the authenticated user
//
//	@Summary		Get user
//	@Description	Returns the authenticated user
//	@Tags			Users
//	@Produce		json
//	@Success		200	{object}	UserResponse
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	UserResponse
//	@Failure		500	{object}	UserResponse
//	@Security		BearerAuth
//	@Router			/v1/user [get]
func (co Controller) GetUser(c *gin.Context) {
	user, err := co.Store.Users().Get(c.Request.Context(), owner(c))
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// DeleteUser deletes the authenticated user and all their data
//
//	@Summary		Delete user
//	@Description	Deletes the authenticated user with all transactions, budgets, pots and the balance. The token is revoked.
//	@Tags			Users
//	@Success		204
//	@Failure		401	{object}	httpError
//	@Failure		404	{object}	httpError
//	@Failure		500	{object}	httpError
//	@Security		BearerAuth
//	@Router			/v1/user [delete]
func (co Controller) DeleteUser(c *gin.Context) {
	if err := co.Store.Users().Delete(c.Request.Context(), owner(c)); err != nil {
		abort(c, err)
		return
	}

	co.Auth.Revoke(session(c))
	c.Status(http.StatusNoContent)
}

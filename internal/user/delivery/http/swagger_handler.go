package http

// RegisterDoc godoc
// @Summary Register a new user
// @Description Create a back-office account. Role defaults to manager.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,email=string,password=string,password_confirm=string,first_name=string,last_name=string,role=string} true "Registration data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,error=string,errors=object}
// @Router /api/auth/register [post]
func (h *UserHandler) RegisterDoc() {}

// LoginDoc godoc
// @Summary User login
// @Description Authenticate and receive a JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login credentials"
// @Success 200 {object} object{success=bool,message=string,data=object{token=string,user=object}}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/login [post]
func (h *UserHandler) LoginDoc() {}

// LogoutDoc godoc
// @Summary Logout
// @Description Revoke the presented token
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/logout [post]
func (h *UserHandler) LogoutDoc() {}

// CurrentDoc godoc
// @Summary Current user
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} object{success=bool,data=object}
// @Failure 401 {object} object{success=bool,error=string}
// @Router /api/auth/current [get]
func (h *UserHandler) CurrentDoc() {}

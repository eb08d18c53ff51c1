package devbackend

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/gophfinance/internal/client/models"
	"github.com/dmitrijs2005/gophfinance/internal/logging"
)

const subjectKey = "subject"

type Options struct {
	Secret   []byte
	TokenTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost; tests pass bcrypt.MinCost.
	BcryptCost int
	Now        func() time.Time
	Logger     logging.Logger
}

type Server struct {
	e      *echo.Echo
	st     *store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	log    logging.Logger
}

func New(opts Options) *Server {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}

	s := &Server{
		e:      echo.New(),
		st:     newStore(opts.BcryptCost),
		secret: opts.Secret,
		ttl:    opts.TokenTTL,
		now:    opts.Now,
		log:    opts.Logger.With("component", "devbackend"),
	}
	s.e.HideBanner = true
	s.e.HidePort = true
	s.routes()
	return s
}

// Handler exposes the router, e.g. for httptest.NewServer.
func (s *Server) Handler() http.Handler { return s.e }

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	err := s.e.Start(addr)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// SeedUser registers a user directly, bypassing HTTP.
func (s *Server) SeedUser(email, password string, role models.Role) (models.User, error) {
	return s.st.register(email, password, role)
}

func (s *Server) routes() {
	s.e.Use(middleware.Recover())
	s.e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			ctx := c.Request().Context()
			if v.Error != nil {
				s.log.Warn(ctx, "request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "error", v.Error)
				return nil
			}
			s.log.Info(ctx, "request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	auth := s.e.Group("/auth")
	auth.POST("/login", s.login)
	auth.POST("/register", s.register)

	api := s.e.Group("/api", s.requireToken)

	cat := api.Group("/categorias")
	cat.GET("", s.listCategories)
	cat.POST("", s.createCategory)
	cat.POST("/batch", s.createCategoryBatch)
	cat.DELETE("/batch", s.deleteCategoryBatch)
	cat.GET("/u/:username", s.listCategoriesByOwner)
	cat.GET("/u/:username/total", s.categoryTotals)
	cat.GET("/:id", s.getCategory)
	cat.PUT("/:id", s.updateCategory)
	cat.DELETE("/:id", s.deleteCategory)

	ent := api.Group("/lancamentos")
	ent.GET("", s.listEntries)
	ent.POST("", s.createEntry)
	ent.POST("/batch", s.createEntryBatch)
	ent.DELETE("/batch", s.deleteEntryBatch)
	ent.GET("/u/:username", s.listEntriesByOwner)
	ent.GET("/fluxo-caixa/historico/:username", s.cashFlow)
	ent.GET("/:id", s.getEntry)
	ent.PUT("/:id", s.updateEntry)
	ent.DELETE("/:id", s.deleteEntry)

	goals := api.Group("/metas")
	goals.GET("", s.listGoals)
	goals.POST("", s.createGoal)
	goals.POST("/batch", s.createGoalBatch)
	goals.DELETE("/batch", s.deleteGoalBatch)
	goals.GET("/u/:username", s.listGoalsByOwner)
	goals.GET("/:id", s.getGoal)
	goals.PUT("/:id", s.updateGoal)
	goals.DELETE("/:id", s.deleteGoal)

	users := api.Group("/users")
	users.GET("", s.listUsers)
	users.DELETE("/batch", s.deleteUserBatch)
	// one parameter name for every method: a uuid for GET/DELETE, a
	// username for PUT
	users.GET("/:key", s.getUser)
	users.PUT("/:key", s.updateUser)
	users.DELETE("/:key", s.deleteUser)
}

// requireToken admits requests carrying a valid bearer token and stores
// its subject in the echo context.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := strings.CutPrefix(c.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
		}
		sub, err := SubjectFromToken(raw, s.secret, s.now)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
		}
		c.Set(subjectKey, sub)
		return next(c)
	}
}

func subject(c echo.Context) string {
	v, _ := c.Get(subjectKey).(string)
	return v
}

// owner returns the :username path parameter when it is the caller.
func owner(c echo.Context) (string, error) {
	u := c.Param("username")
	if u != subject(c) {
		return "", httpError(errForbidden)
	}
	return u, nil
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func bind(c echo.Context, v any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, v); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed body")
	}
	return nil
}

// auth

func (s *Server) issue(c echo.Context, email string) error {
	tok, err := GenerateToken(email, s.secret, s.ttl, s.now())
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, models.TokenResponse{Token: tok})
}

func (s *Server) login(c echo.Context) error {
	var cr models.Credentials
	if err := bind(c, &cr); err != nil {
		return err
	}
	if err := s.st.authenticate(cr.Email, cr.Password); err != nil {
		return httpError(err)
	}
	return s.issue(c, cr.Email)
}

func (s *Server) register(c echo.Context) error {
	var cr models.Credentials
	if err := bind(c, &cr); err != nil {
		return err
	}
	if _, err := s.st.register(cr.Email, cr.Password, models.RoleUser); err != nil {
		return httpError(err)
	}
	return s.issue(c, cr.Email)
}

// categories

func (s *Server) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.listCategories(""))
}

func (s *Server) listCategoriesByOwner(c echo.Context) error {
	u, err := owner(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.st.listCategories(u))
}

func (s *Server) categoryTotals(c echo.Context) error {
	u, err := owner(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.st.categoryTotals(u))
}

func (s *Server) getCategory(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	cat, err := s.st.getCategory(id, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (s *Server) createCategory(c echo.Context) error {
	var d models.CategoryDraft
	if err := bind(c, &d); err != nil {
		return err
	}
	out, err := s.st.createCategories([]models.CategoryDraft{d}, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out[0])
}

func (s *Server) createCategoryBatch(c echo.Context) error {
	var ds []models.CategoryDraft
	if err := bind(c, &ds); err != nil {
		return err
	}
	out, err := s.st.createCategories(ds, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateCategory(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p models.CategoryPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	out, err := s.st.updateCategory(id, p, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteCategory(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.st.deleteCategories([]int64{id}, subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteCategoryBatch(c echo.Context) error {
	var ids []int64
	if err := bind(c, &ids); err != nil {
		return err
	}
	if err := s.st.deleteCategories(ids, subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// entries

func (s *Server) listEntries(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.listEntries(""))
}

func (s *Server) listEntriesByOwner(c echo.Context) error {
	u, err := owner(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.st.listEntries(u))
}

func (s *Server) cashFlow(c echo.Context) error {
	u, err := owner(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.st.cashFlow(u))
}

func (s *Server) getEntry(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	e, err := s.st.getEntry(id, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, e)
}

func (s *Server) createEntry(c echo.Context) error {
	var d models.EntryDraft
	if err := bind(c, &d); err != nil {
		return err
	}
	out, err := s.st.createEntries([]models.EntryDraft{d}, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out[0])
}

func (s *Server) createEntryBatch(c echo.Context) error {
	var ds []models.EntryDraft
	if err := bind(c, &ds); err != nil {
		return err
	}
	out, err := s.st.createEntries(ds, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateEntry(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p models.EntryPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	out, err := s.st.updateEntry(id, p, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteEntry(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.st.deleteEntries([]int64{id}, subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteEntryBatch(c echo.Context) error {
	var ids []int64
	if err := bind(c, &ids); err != nil {
		return err
	}
	if err := s.st.deleteEntries(ids, subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// goals

func (s *Server) listGoals(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.listGoals(""))
}

func (s *Server) listGoalsByOwner(c echo.Context) error {
	u, err := owner(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s.st.listGoals(u))
}

func (s *Server) getGoal(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	g, err := s.st.getGoal(id, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, g)
}

func (s *Server) createGoal(c echo.Context) error {
	var d models.GoalDraft
	if err := bind(c, &d); err != nil {
		return err
	}
	out, err := s.st.createGoals([]models.GoalDraft{d}, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out[0])
}

func (s *Server) createGoalBatch(c echo.Context) error {
	var ds []models.GoalDraft
	if err := bind(c, &ds); err != nil {
		return err
	}
	out, err := s.st.createGoals(ds, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) updateGoal(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	var p models.GoalPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	out, err := s.st.updateGoal(id, p, subject(c))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) deleteGoal(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}
	if err := s.st.deleteGoals([]int64{id}, subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteGoalBatch(c echo.Context) error {
	var ids []int64
	if err := bind(c, &ids); err != nil {
		return err
	}
	if err := s.st.deleteGoals(ids, subject(c)); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// users

func (s *Server) listUsers(c echo.Context) error {
	return c.JSON(http.StatusOK, s.st.listUsers())
}

func uuidParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("key"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}
	return id, nil
}

func (s *Server) getUser(c echo.Context) error {
	id, err := uuidParam(c)
	if err != nil {
		return err
	}
	u, err := s.st.getUser(id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) updateUser(c echo.Context) error {
	var p models.UserPatch
	if err := bind(c, &p); err != nil {
		return err
	}
	u, err := s.st.updateUser(c.Param("key"), p)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, u)
}

func (s *Server) deleteUser(c echo.Context) error {
	id, err := uuidParam(c)
	if err != nil {
		return err
	}
	if err := s.st.deleteUsers([]uuid.UUID{id}); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) deleteUserBatch(c echo.Context) error {
	var ids []uuid.UUID
	if err := bind(c, &ids); err != nil {
		return err
	}
	if len(ids) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "ids is required")
	}
	if err := s.st.deleteUsers(ids); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

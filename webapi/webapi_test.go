package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/lottohq/lottery/pkg/app"
	"github.com/lottohq/lottery/pkg/config"
	"github.com/lottohq/lottery/pkg/dto"
	"github.com/lottohq/lottery/pkg/money"
	"github.com/lottohq/lottery/pkg/testutils"
	"github.com/lottohq/lottery/pkg/utils"
)

type WebAPITestSuite struct {
	suite.Suite
	app  *fiber.App
	uow  *testutils.FakeUoW
	deps *app.Deps
}

func (s *WebAPITestSuite) SetupTest() {
	s.uow = testutils.NewFakeUoW()
	s.deps = &app.Deps{
		Uow:        s.uow,
		Revocation: testutils.NewFakeRevocationStore(),
		Logger:     testutils.DiscardLogger(),
	}
	cfg := &config.App{
		Env:       "test",
		Jwt:       &config.Jwt{Secret: "test-secret", Expiry: time.Hour},
		RateLimit: &config.RateLimit{MaxRequests: 1000, Window: time.Minute},
	}
	s.app = SetupApp(app.New(s.deps, cfg))
}

func (s *WebAPITestSuite) seedUser(username, password, role string, balance money.Amount) uuid.UUID {
	hashed, err := utils.HashPassword(password)
	s.Require().NoError(err)
	id := uuid.New()
	s.Require().NoError(s.uow.Users.Create(context.Background(), &dto.UserCreate{
		ID:       id,
		Username: username,
		Email:    username + "@example.com",
		Phone:    "08" + id.String()[:8],
		Password: hashed,
		Role:     role,
		Money:    balance,
		Status:   "approved",
	}))
	return id
}

func (s *WebAPITestSuite) seedTicket(number string, price money.Amount) uuid.UUID {
	id := uuid.New()
	s.Require().NoError(s.uow.Tickets.Create(context.Background(), &dto.TicketCreate{
		ID:           id,
		TicketNumber: number,
		Price:        price,
	}))
	return id
}

func (s *WebAPITestSuite) login(username, password string) string {
	body := fmt.Sprintf(`{"username":%q,"password":%q}`, username, password)
	resp := testutils.MakeRequestWithApp(s.app, fiber.MethodPost, "/auth/token", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().NotEmpty(envelope.Data.Token)
	return envelope.Data.Token
}

func (s *WebAPITestSuite) request(method, target, body, token string) *http.Response {
	return testutils.MakeRequestWithApp(s.app, method, target, body, token)
}

func (s *WebAPITestSuite) TestHealth() {
	resp := s.request(fiber.MethodGet, "/", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)
}

func (s *WebAPITestSuite) TestLogin_InvalidCredentials() {
	s.seedUser("alice", "secret123", "user", 0)

	resp := s.request(fiber.MethodPost, "/auth/token",
		`{"username":"alice","password":"wrong"}`, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *WebAPITestSuite) TestLogout_RevokesToken() {
	s.seedUser("alice", "secret123", "user", 0)
	token := s.login("alice", "secret123")

	resp := s.request(fiber.MethodGet, "/users/@me", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	resp = s.request(fiber.MethodDelete, "/auth/token", "", token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNoContent, resp.StatusCode)

	// The revoked token no longer opens protected routes.
	resp = s.request(fiber.MethodGet, "/users/@me", "", token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusUnauthorized, resp.StatusCode)
}

func (s *WebAPITestSuite) TestRegister_CreatedThenDuplicate() {
	body := `{"username":"alice","email":"alice@example.com","phone":"0812345678","password":"secret123"}`
	resp := s.request(fiber.MethodPost, "/users", body, "")
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusCreated, resp.StatusCode)

	resp = s.request(fiber.MethodPost, "/users", body, "")
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	var pd struct {
		Errors struct {
			UsernameTaken bool `json:"usernameTaken"`
			EmailTaken    bool `json:"emailTaken"`
			PhoneTaken    bool `json:"phoneTaken"`
		} `json:"errors"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&pd))
	s.True(pd.Errors.UsernameTaken)
	s.True(pd.Errors.EmailTaken)
	s.True(pd.Errors.PhoneTaken)
}

func (s *WebAPITestSuite) TestPurchase_FlowAndErrorMapping() {
	buyerID := s.seedUser("buyer", "secret123", "user", 100)
	s.seedTicket("123456", 80)
	token := s.login("buyer", "secret123")

	// Unknown ticket -> 404.
	resp := s.request(fiber.MethodPost, "/users/@me/tickets/purchase",
		`{"ticket_number":"999999"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusNotFound, resp.StatusCode)

	// Successful purchase.
	resp = s.request(fiber.MethodPost, "/users/@me/tickets/purchase",
		`{"ticket_number":"123456"}`, token)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	buyer, err := s.uow.Users.Get(context.Background(), buyerID)
	s.Require().NoError(err)
	s.Equal(money.Amount(20), buyer.Money)

	// Repeat purchase -> 400, balance unchanged.
	resp = s.request(fiber.MethodPost, "/users/@me/tickets/purchase",
		`{"ticket_number":"123456"}`, token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	buyer, err = s.uow.Users.Get(context.Background(), buyerID)
	s.Require().NoError(err)
	s.Equal(money.Amount(20), buyer.Money)
}

func (s *WebAPITestSuite) TestPurchase_InsufficientFunds() {
	s.seedUser("broke", "secret123", "user", 10)
	s.seedTicket("123456", 80)
	token := s.login("broke", "secret123")

	resp := s.request(fiber.MethodPost, "/users/@me/tickets/purchase",
		`{"ticket_number":"123456"}`, token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)
}

func (s *WebAPITestSuite) TestClaim_OwnershipAndRepeat() {
	ownerID := s.seedUser("owner", "secret123", "user", 20)
	s.seedUser("intruder", "secret123", "user", 0)
	s.seedUser("boss", "secret123", "admin", 0)
	ticketID := s.seedTicket("123456", 80)
	s.Require().NoError(s.uow.Tickets.ClaimOwnership(context.Background(), ticketID, ownerID))

	adminToken := s.login("boss", "secret123")
	resp := s.request(fiber.MethodPost, "/prizes",
		`{"mode":"RANKED","ticket_number":"123456","prize_description":"first prize","prize_amount":5000000}`,
		adminToken)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var created struct {
		Data struct {
			ID uuid.UUID `json:"id"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&created))

	claimURL := "/users/@me/prizes/" + created.Data.ID.String() + "/claim"

	// Someone else's claim -> 403.
	intruderToken := s.login("intruder", "secret123")
	resp = s.request(fiber.MethodPost, claimURL, "", intruderToken)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusForbidden, resp.StatusCode)

	// Owner claim -> 200 and balance credited.
	ownerToken := s.login("owner", "secret123")
	resp = s.request(fiber.MethodPost, claimURL, "", ownerToken)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	owner, err := s.uow.Users.Get(context.Background(), ownerID)
	s.Require().NoError(err)
	s.Equal(money.Amount(5000020), owner.Money)

	// Second claim -> 400, balance unchanged.
	resp = s.request(fiber.MethodPost, claimURL, "", ownerToken)
	resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusBadRequest, resp.StatusCode)

	owner, err = s.uow.Users.Get(context.Background(), ownerID)
	s.Require().NoError(err)
	s.Equal(money.Amount(5000020), owner.Money)
}

func (s *WebAPITestSuite) TestAdminRoutes_RequireAdminRole() {
	s.seedUser("plain", "secret123", "user", 0)
	token := s.login("plain", "secret123")

	for _, target := range []string{"/users", "/prizes", "/system/reset"} {
		resp := s.request(fiber.MethodGet, target, "", token)
		resp.Body.Close() //nolint: errcheck
		s.Equal(fiber.StatusForbidden, resp.StatusCode, "expected 403 for %s", target)
	}

	resp := s.request(fiber.MethodPost, "/tickets",
		`{"ticket_number":"123456","price":80}`, token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusForbidden, resp.StatusCode)
}

func (s *WebAPITestSuite) TestProtectedRoutes_RejectMissingToken() {
	resp := s.request(fiber.MethodGet, "/users/@me", "", "")
	defer resp.Body.Close() //nolint: errcheck
	s.NotEqual(fiber.StatusOK, resp.StatusCode)
}

func (s *WebAPITestSuite) TestSystemReset_SeedsAdmin() {
	s.seedUser("boss", "secret123", "admin", 0)
	s.seedUser("alice", "secret123", "user", 500)
	token := s.login("boss", "secret123")

	resp := s.request(fiber.MethodGet, "/system/reset", "", token)
	defer resp.Body.Close() //nolint: errcheck
	s.Equal(fiber.StatusOK, resp.StatusCode)

	count, err := s.uow.Users.Count(context.Background())
	s.Require().NoError(err)
	s.EqualValues(1, count)

	seeded, err := s.uow.Users.GetByUsername(context.Background(), "admin")
	s.Require().NoError(err)
	s.Require().NotNil(seeded)
	s.Equal("admin", seeded.Role)
}

func (s *WebAPITestSuite) TestMyTickets_OmitsPriceAndOwner() {
	ownerID := s.seedUser("owner", "secret123", "user", 0)
	ticketID := s.seedTicket("123456", 80)
	s.Require().NoError(s.uow.Tickets.ClaimOwnership(context.Background(), ticketID, ownerID))
	token := s.login("owner", "secret123")

	resp := s.request(fiber.MethodGet, "/users/@me/tickets", "", token)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusOK, resp.StatusCode)

	var envelope struct {
		Data []map[string]any `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Require().Len(envelope.Data, 1)
	s.Equal("123456", envelope.Data[0]["ticket_number"])
	s.NotContains(envelope.Data[0], "price")
	s.NotContains(envelope.Data[0], "owner_id")
}

func (s *WebAPITestSuite) TestCreatePrize_LastModeBulkCount() {
	s.seedUser("boss", "secret123", "admin", 0)
	s.seedTicket("100888", 80)
	s.seedTicket("200888", 80)
	s.seedTicket("123456", 80)
	token := s.login("boss", "secret123")

	resp := s.request(fiber.MethodPost, "/prizes",
		`{"mode":"LAST","ticket_number":"888","prize_description":"last-three","prize_amount":2000}`,
		token)
	defer resp.Body.Close() //nolint: errcheck
	s.Require().Equal(fiber.StatusCreated, resp.StatusCode)

	var envelope struct {
		Data struct {
			Count int `json:"count"`
		} `json:"data"`
	}
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	s.Equal(2, envelope.Data.Count)
}

func TestWebAPITestSuite(t *testing.T) {
	suite.Run(t, new(WebAPITestSuite))
}

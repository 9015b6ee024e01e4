package routes

import (
	"time"

	"gamewallet/controllers/admin"
	"gamewallet/controllers/agent"
	"gamewallet/controllers/callback/slots/gitslotpark"
	"gamewallet/controllers/callback/slots/pragmatic"
	"gamewallet/controllers/user"
	"gamewallet/middlewares"
	"gamewallet/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

// Deps are the services the HTTP layer is built on.
type Deps struct {
	Agents   *services.AgentService
	Wallets  *services.WalletService
	Sessions *services.SessionService
	Bonuses  *services.BonusService
	KYC      *services.KYCService
	Admins   *services.AdminService
	Seamless *services.SeamlessService
	Audit    *services.CallbackAuditor

	MasterAgentCode    string
	MasterAgentSecret  string
	PragmaticSecretKey string
	SkipSign           bool
	LoginRateLimit     int
}

func Setup(app *fiber.App, d Deps) {
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	users := user.NewHandler(d.Wallets, d.Sessions, d.Bonuses, d.KYC)
	userroutes := app.Group("/user", middlewares.AgentAuth(d.Agents))
	userroutes.Post("/balance", users.CheckUserBalance)
	userroutes.Post("/register", users.RegisterUser)
	userroutes.Post("/transfer", users.TransferBalance)
	userroutes.Post("/games/start", users.LaunchGame)
	userroutes.Get("/transactions", users.Transactions)
	userroutes.Post("/limits", users.SetLimits)
	userroutes.Post("/self-exclude", users.SelfExclude)
	userroutes.Post("/bonus/claim", users.ClaimBonus)
	userroutes.Get("/bonus/list", users.ListBonuses)
	userroutes.Post("/kyc/submit", users.SubmitKYC)

	agents := agent.NewHandler(d.Agents, d.Wallets)
	app.Post("/agent/info", middlewares.AgentAuth(d.Agents), agents.AgentInfo)
	app.Post("/agent/register", middlewares.MasterSignature(d.MasterAgentCode, d.MasterAgentSecret), agents.RegisterAgent)

	//gitslotpark
	gsp := gitslotpark.NewHandler(d.Seamless)
	gsproutes := app.Group("/seamless/gitslotpark")
	gsproutes.Post("/balance", gsp.Balance)
	gsproutes.Post("/authenticate", gsp.Authenticate)
	gsproutes.Post("/withdraw", gsp.Withdraw)
	gsproutes.Post("/deposit", gsp.Deposit)
	gsproutes.Post("/rollback", gsp.Rollback)

	//pragmatic
	pp := pragmatic.NewHandler(d.Wallets, d.Sessions, d.Audit, d.PragmaticSecretKey)
	pp.SkipHash = d.SkipSign
	if d.PragmaticSecretKey == "" && !d.SkipSign {
		logrus.Warn("PRAGMATIC_SECRET_KEY is not set, pragmatic callbacks will be rejected")
	}
	prroutes := app.Group("/seamless/provider/pragmatic")
	prroutes.Post("/authenticate", pp.Authenticate)
	prroutes.Post("/balance", pp.Balance)
	prroutes.Post("/bet", pp.Bet)
	prroutes.Post("/result", pp.Result)
	prroutes.Post("/refund", pp.Refund)

	rateLimit := d.LoginRateLimit
	if rateLimit <= 0 {
		rateLimit = 5
	}
	admins := admin.NewHandler(d.Admins, d.Wallets, d.Bonuses, d.KYC)
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        rateLimit,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "TOO_MANY_REQUESTS",
				"data":    nil,
			})
		},
	}), admins.Login)

	adminroutes := app.Group("/admin", middlewares.AdminAuth(d.Admins))
	adminroutes.Get("/wallets/:playerID", admins.GetWallet)
	adminroutes.Post("/wallets/:playerID/status", admins.SetWalletStatus)
	adminroutes.Post("/wallets/:playerID/vip", admins.SetVIPLevel)
	adminroutes.Post("/wallets/:playerID/adjust", middlewares.RequireRole("admin", "superadmin"), admins.Adjust)
	adminroutes.Get("/transactions", admins.Transactions)
	adminroutes.Get("/kyc", admins.ListKYC)
	adminroutes.Post("/kyc/:id/approve", admins.ApproveKYC)
	adminroutes.Post("/kyc/:id/reject", admins.RejectKYC)
	adminroutes.Get("/bonus/templates", admins.ListBonusTemplates)
	adminroutes.Post("/bonus/templates", admins.CreateBonusTemplate)
	adminroutes.Post("/bonus/templates/:code/toggle", admins.ToggleBonusTemplate)
	adminroutes.Get("/security-logs", admins.SecurityLogs)
}

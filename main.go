package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/spf13/cobra"

	"github.com/pr-poehali-dev/sistem-integ-website-sub000/collections"
	"github.com/pr-poehali-dev/sistem-integ-website-sub000/handlers"
	"github.com/pr-poehali-dev/sistem-integ-website-sub000/services"
)

func main() {
	app := pocketbase.New()

	services.RegisterEstimateHooks(app)

	// Create collections, seed data and upgrade legacy payloads on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := services.MigrateLegacyEstimateItems(app); err != nil {
			log.Printf("Warning: estimate migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// ── Public site ──────────────────────────────────────────
		se.Router.GET("/", handlers.HandleHome(app))
		se.Router.POST("/api/contact", handlers.HandleContactSubmit(app))
		se.Router.POST("/api/calculator", handlers.HandleCalculatorEstimate(app))
		se.Router.GET("/api/content", handlers.HandleContentGetAll(app))

		// ── Panel auth (no token required) ───────────────────────
		se.Router.POST("/api/admin/login", handlers.HandleLogin(app))
		se.Router.POST("/api/admin/password-reset", handlers.HandlePasswordResetRequest(app))
		se.Router.POST("/api/admin/password-reset/confirm", handlers.HandlePasswordResetConfirm(app))

		// ── Admin API ────────────────────────────────────────────
		admin := se.Router.Group("/api/admin")
		admin.BindFunc(handlers.RequireAuth(app))

		admin.POST("/change-password", handlers.HandleChangePassword(app))

		// Catalogs (materials, units, works, persons, legal entities)
		admin.GET("/catalogs/{catalog}", handlers.HandleCatalogList(app))
		admin.POST("/catalogs/{catalog}", handlers.HandleCatalogCreate(app))
		admin.GET("/catalogs/{catalog}/{id}", handlers.HandleCatalogView(app))
		admin.PATCH("/catalogs/{catalog}/{id}", handlers.HandleCatalogUpdate(app))
		admin.DELETE("/catalogs/{catalog}/{id}", handlers.HandleCatalogDelete(app))
		admin.POST("/materials/import", handlers.HandleMaterialImport(app))

		// Banks
		admin.GET("/banks", handlers.HandleBankList(app))
		admin.POST("/banks", handlers.HandleBankCreate(app))
		admin.PATCH("/banks/{id}", handlers.HandleBankUpdate(app))
		admin.DELETE("/banks/{id}", handlers.HandleBankDelete(app))
		admin.POST("/banks/sync", handlers.HandleBankSync(app))

		// Estimates
		admin.GET("/estimates", handlers.HandleEstimateList(app))
		admin.POST("/estimates", handlers.HandleEstimateCreate(app))
		admin.GET("/estimates/next-number", handlers.HandleEstimateNextNumber(app))
		admin.GET("/estimates/{id}", handlers.HandleEstimateView(app))
		admin.PATCH("/estimates/{id}", handlers.HandleEstimateUpdate(app))
		admin.DELETE("/estimates/{id}", handlers.HandleEstimateDelete(app))
		admin.GET("/estimates/{id}/export/excel", handlers.HandleEstimateExport(app))

		// Projects with systems, access and title pages
		admin.GET("/projects", handlers.HandleProjectList(app))
		admin.POST("/projects", handlers.HandleProjectCreate(app))
		admin.GET("/projects/statuses", handlers.HandleProjectStatuses())
		admin.GET("/projects/{id}", handlers.HandleProjectView(app))
		admin.PATCH("/projects/{id}", handlers.HandleProjectUpdate(app))
		admin.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))

		admin.GET("/projects/{projectId}/systems", handlers.HandleSystemList(app))
		admin.POST("/projects/{projectId}/systems", handlers.HandleSystemCreate(app))
		admin.PATCH("/systems/{id}", handlers.HandleSystemUpdate(app))
		admin.DELETE("/systems/{id}", handlers.HandleSystemDelete(app))

		admin.GET("/projects/{projectId}/access", handlers.HandleAccessList(app))
		admin.POST("/projects/{projectId}/access", handlers.HandleAccessGrant(app))
		admin.DELETE("/access/{id}", handlers.HandleAccessRevoke(app))

		admin.GET("/projects/{projectId}/title-pages", handlers.HandleTitlePageList(app))
		admin.POST("/projects/{projectId}/title-pages", handlers.HandleTitlePageCreate(app))
		admin.PATCH("/title-pages/{id}", handlers.HandleTitlePageUpdate(app))
		admin.DELETE("/title-pages/{id}", handlers.HandleTitlePageDelete(app))
		admin.GET("/title-pages/{id}/pdf", handlers.HandleTitlePagePDF(app))

		admin.GET("/title-page-templates", handlers.HandleTemplateList(app))
		admin.POST("/title-page-templates", handlers.HandleTemplateCreate(app))
		admin.PATCH("/title-page-templates/{id}", handlers.HandleTemplateUpdate(app))
		admin.DELETE("/title-page-templates/{id}", handlers.HandleTemplateDelete(app))
		admin.POST("/title-page-templates/{id}/duplicate", handlers.HandleTemplateDuplicate(app))

		// Site content and images
		admin.GET("/content/{key}", handlers.HandleContentGet(app))
		admin.PUT("/content/{key}", handlers.HandleContentSet(app))
		admin.GET("/images", handlers.HandleImageList(app))
		admin.POST("/images", handlers.HandleImageUpload(app))
		admin.DELETE("/images/{id}", handlers.HandleImageDelete(app))
		admin.GET("/images/stats", handlers.HandleImageStats(app))

		// Calculator pricing
		admin.GET("/calculator-settings", handlers.HandleCalculatorSettingsList(app))
		admin.PUT("/calculator-settings", handlers.HandleCalculatorSettingsUpdate(app))

		// User administration is admin-only
		users := se.Router.Group("/api/admin/users")
		users.BindFunc(handlers.RequireAuth(app))
		users.BindFunc(handlers.RequireAdminRole())
		users.GET("", handlers.HandleUserList(app))
		users.POST("", handlers.HandleUserCreate(app))
		users.PATCH("/{id}", handlers.HandleUserUpdate(app))
		users.DELETE("/{id}", handlers.HandleUserDelete(app))

		return se.Next()
	})

	app.RootCmd.AddCommand(syncBanksCmd(app))

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// syncBanksCmd refreshes the bank directory from the central bank feed
// outside the HTTP surface, handy for cron.
func syncBanksCmd(app *pocketbase.PocketBase) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "sync-banks",
		Short: "Refresh the bank directory from the central bank BIC feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Bootstrap(); err != nil {
				return err
			}
			collections.Setup(app)

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()

			client := &http.Client{Timeout: 30 * time.Second}
			count, err := services.SyncBankDirectory(ctx, app, client, services.DefaultBankDirectoryURL, force)
			if err != nil {
				return err
			}
			log.Printf("sync-banks: stored %d directory entries\n", count)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "sync even when the cached directory is fresh")
	return cmd
}

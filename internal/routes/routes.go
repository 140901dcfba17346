package routes

import (
	"net/http"

	"github.com/roamlog/roamlog/internal/app"
	"github.com/roamlog/roamlog/internal/handler"
	"github.com/roamlog/roamlog/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	auth := handler.NewAuthHandler(app.AuthService)
	user := handler.NewUserHandler(app.AuthService, app.UserService)
	story := handler.NewStoryHandler(app.StoryService)
	media := handler.NewMediaHandler(app.MediaService)

	mux := http.NewServeMux()

	// Auth
	mux.HandleFunc("POST /api/auth/signup", auth.SignUp)
	mux.HandleFunc("POST /api/auth/signin", auth.SignIn)

	// User
	mux.HandleFunc("GET /api/user/me", middleware.RequireAuth(user.Me))
	mux.HandleFunc("POST /api/user/signout", user.SignOut)
	mux.HandleFunc("PUT /api/user/profile", middleware.RequireAuth(user.UpdateProfile))

	// Travel stories
	mux.HandleFunc("POST /api/travel-story/add", middleware.RequireAuth(story.Add))
	mux.HandleFunc("GET /api/travel-story/get-all", middleware.RequireAuth(story.GetAll))
	mux.HandleFunc("PUT /api/travel-story/edit/{id}", middleware.RequireAuth(story.Edit))
	mux.HandleFunc("DELETE /api/travel-story/delete/{id}", middleware.RequireAuth(story.Delete))
	mux.HandleFunc("PUT /api/travel-story/update-is-favorite/{id}", middleware.RequireAuth(story.UpdateIsFavorite))
	mux.HandleFunc("GET /api/travel-story/search", middleware.RequireAuth(story.Search))
	mux.HandleFunc("GET /api/travel-story/filter", middleware.RequireAuth(story.Filter))

	// Media
	mux.HandleFunc("POST /api/travel-story/image-upload", middleware.RequireAuth(media.Upload))
	mux.HandleFunc("DELETE /api/travel-story/delete-image", middleware.RequireAuth(media.Delete))

	// Served media: uploaded files (local storage driver) and bundled
	// assets (placeholder image)
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(app.Cfg.UploadDir))))
	mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir("assets"))))

	// Global middleware - executed in order (top to bottom)
	return middleware.Chain(
		mux,
		middleware.CORS(app.Cfg.CORSAllowedOrigins),
		middleware.RequestLogging,
		middleware.AuthMiddleware(app.AuthService),
	)
}

// Package server provides the HTTP server behind `parallel-instances serve`.
//
// The server uses the Gin web framework and exposes the report API under
// /api/v1. Bearer token authentication is added when auth.enabled is set.
//
// # Architecture Overview
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                         HTTP Server                           │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Middleware Stack                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Logger (ginzap.Ginzap, "http" logger)                  │  │
//	│  │  Recovery (ginzap.RecoveryWithZap with stack traces)    │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	├───────────────────────────────────────────────────────────────┤
//	│  /health                   public                             │
//	├───────────────────────────────────────────────────────────────┤
//	│                       Router (/api/v1)                        │
//	│  ┌─────────────────────────────────────────────────────────┐  │
//	│  │  Authenticator (HS256 bearer token, auth.enabled only)  │  │
//	│  │  Handlers (registered via callback)                     │  │
//	│  └─────────────────────────────────────────────────────────┘  │
//	└───────────────────────────────────────────────────────────────┘
//
// # Server Modes
//
// Development Mode (ServerMode = "dev"):
//   - Gin runs in debug mode
//
// Production Mode (ServerMode = "prod"):
//   - Gin runs in release mode
//
// In both modes unknown /api routes answer a JSON 404.
//
// # Authentication
//
// Tokens are HS256 JWTs signed with auth.jwtSecret, issued by
// "parallel-instances" and carrying an expiry. NewToken mints one:
//
//	token, err := server.NewToken(cfg.Auth.JWTSecret, "ci", 24*time.Hour)
//
//	curl -H "Authorization: Bearer $TOKEN" localhost:8000/api/v1/runs
//
// Missing or invalid tokens get 401 Unauthorized.
//
// # Server Lifecycle
//
//	srv, err := server.NewServer(cfg, func(router *gin.RouterGroup) {
//	    handlers.RegisterHandlers(router, handler)
//	})
//
//	// Blocks until ctx is cancelled, then shuts down gracefully
//	err = srv.Start(ctx)
package server

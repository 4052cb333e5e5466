// Package controllers holds the HTTP layer. Controllers bind and check
// request shapes, delegate to services and translate errors through the
// shared middleware mapping; no business rule lives here.
package controllers

import "github.com/gin-gonic/gin"

// actorEmail returns the authenticated identity recorded into audit
// events. JWTAuth sets it; on unauthenticated routes it is empty.
func actorEmail(ctx *gin.Context) string {
	if email, exists := ctx.Get("email"); exists {
		if s, ok := email.(string); ok {
			return s
		}
	}
	return ""
}

// Package docs registers the OpenAPI document served at /swagger.
// Regenerate with `swag init -g cmd/api/main.go -o internal/docs`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/auth/register": {"post": {"tags": ["auth"], "summary": "Register a new user", "responses": {"201": {"description": "User registered and token generated"}, "400": {"description": "Invalid input"}, "409": {"description": "Email already registered"}}}},
        "/auth/login": {"post": {"tags": ["auth"], "summary": "Login user", "responses": {"200": {"description": "User authenticated and token generated"}, "401": {"description": "Invalid credentials"}}}},
        "/auth/logout": {"post": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Logout user", "responses": {"200": {"description": "Logged out"}}}},
        "/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Get user profile", "responses": {"200": {"description": "User profile"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Update user profile", "responses": {"200": {"description": "Updated profile"}}}
        },
        "/profile/password": {"put": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Change password", "responses": {"200": {"description": "Password changed"}}}},
        "/profile/activity": {"get": {"security": [{"BearerAuth": []}], "tags": ["user"], "summary": "Recent account activity", "responses": {"200": {"description": "Activity entries"}}}},
        "/categories": {"get": {"tags": ["categories"], "summary": "List categories", "responses": {"200": {"description": "Categories"}}}},
        "/categories/{id}": {"get": {"tags": ["categories"], "summary": "Get category", "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "Category"}, "404": {"description": "Category not found"}}}},
        "/conditions": {"get": {"tags": ["categories"], "summary": "List conditions", "responses": {"200": {"description": "Conditions"}}}},
        "/assets": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "List assets", "responses": {"200": {"description": "Paginated assets"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Create asset", "responses": {"201": {"description": "Asset created"}}}
        },
        "/assets/state": {"get": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Collection state", "responses": {"200": {"description": "Namespace, loading, error, asset count"}}}},
        "/assets/error": {"delete": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Dismiss storage error", "responses": {"204": {"description": "Cleared"}}}},
        "/assets/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Get asset", "responses": {"200": {"description": "Asset"}, "404": {"description": "Asset not found"}}},
            "patch": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Update asset", "responses": {"200": {"description": "Updated asset, or updated=false for an unknown id"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Delete asset", "responses": {"204": {"description": "Deleted, or nothing to delete"}}}
        },
        "/assets/{id}/fields": {"get": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Editable detail fields", "responses": {"200": {"description": "Fields"}}}},
        "/assets/{id}/favorite": {"post": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Toggle favorite", "responses": {"200": {"description": "Updated asset"}}}},
        "/assets/{id}/value": {"put": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Update current value", "responses": {"200": {"description": "Updated asset"}}}},
        "/assets/{id}/photos": {"post": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Add photos", "responses": {"200": {"description": "Updated asset"}}}},
        "/assets/{id}/photos/{photoId}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["assets"], "summary": "Remove photo", "responses": {"200": {"description": "Updated asset"}}}},
        "/assets/summary": {"get": {"security": [{"BearerAuth": []}], "tags": ["portfolio"], "summary": "Portfolio summary", "responses": {"200": {"description": "Summary"}}}},
        "/assets/recent": {"get": {"security": [{"BearerAuth": []}], "tags": ["portfolio"], "summary": "Recent assets", "responses": {"200": {"description": "Assets"}}}},
        "/assets/categories": {"get": {"security": [{"BearerAuth": []}], "tags": ["portfolio"], "summary": "Category statistics", "responses": {"200": {"description": "Stats for every category"}}}},
        "/assets/favorites/stats": {"get": {"security": [{"BearerAuth": []}], "tags": ["portfolio"], "summary": "Favorites statistics", "responses": {"200": {"description": "Favorites stats"}}}},
        "/assets/revalue": {"post": {"security": [{"BearerAuth": []}], "tags": ["portfolio"], "summary": "Revalue assets", "responses": {"200": {"description": "Run result"}}}},
        "/maintenance/revalue": {"post": {"tags": ["maintenance"], "summary": "Revalue a namespace", "responses": {"200": {"description": "Run result"}, "401": {"description": "Invalid API key"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "AssetVault API",
	Description:      "AssetVault tracks personal assets, their purchase prices and current values, and summarizes the portfolio they form.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs holds the OpenAPI document served under /swagger. Regenerate with
// `swag init -g cmd/app/main.go` after changing handler annotations.
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
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/v1/auth/register": {"post": {"tags": ["auth"], "summary": "Register a user or host account", "responses": {"201": {"description": "Created"}}}},
        "/v1/auth/login": {"post": {"tags": ["auth"], "summary": "Log in with email and password", "responses": {"200": {"description": "OK"}}}},
        "/v1/auth/refresh-token": {"post": {"tags": ["auth"], "summary": "Exchange a refresh token for a new token pair", "responses": {"200": {"description": "OK"}}}},
        "/v1/auth/change-password": {"patch": {"tags": ["auth"], "summary": "Change the caller's password", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/users/me": {
            "get": {"tags": ["users"], "summary": "Current user profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "patch": {"tags": ["users"], "summary": "Update the current user profile", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/v1/venues": {
            "get": {"tags": ["venues"], "summary": "Search venues", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["venues"], "summary": "Create a venue", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/v1/venues/mine": {"get": {"tags": ["venues"], "summary": "Venues owned by the caller", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/venues/{id}": {"get": {"tags": ["venues"], "summary": "Venue by id", "responses": {"200": {"description": "OK"}}}},
        "/v1/venues/{id}/turfs": {"get": {"tags": ["venues"], "summary": "Turfs of a venue", "responses": {"200": {"description": "OK"}}}},
        "/v1/venues/{id}/images": {"post": {"tags": ["venues"], "summary": "Upload a venue image", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/turfs": {"post": {"tags": ["turfs"], "summary": "Create a turf", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/v1/turfs/amenities": {"get": {"tags": ["turfs"], "summary": "Default amenities for a sport", "responses": {"200": {"description": "OK"}}}},
        "/v1/turfs/{id}": {"get": {"tags": ["turfs"], "summary": "Turf by id", "responses": {"200": {"description": "OK"}}}},
        "/v1/turfs/{id}/slots": {"get": {"tags": ["turfs"], "summary": "Hourly availability for a date", "responses": {"200": {"description": "OK"}}}},
        "/v1/turfs/{id}/bookings": {"get": {"tags": ["turfs"], "summary": "Bookings of a turf", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/turfs/{id}/images": {"post": {"tags": ["turfs"], "summary": "Upload a turf image", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/bookings": {"post": {"tags": ["bookings"], "summary": "Book a turf", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}},
        "/v1/bookings/mine": {"get": {"tags": ["bookings"], "summary": "Bookings of the caller", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/bookings/{id}": {"get": {"tags": ["bookings"], "summary": "Booking by id", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/bookings/{id}/confirm": {"patch": {"tags": ["bookings"], "summary": "Confirm a pending booking", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}},
        "/v1/bookings/{id}/cancel": {"patch": {"tags": ["bookings"], "summary": "Cancel a booking", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Turfbook API",
	Description:      "Venue, turf and booking management API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

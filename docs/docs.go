// Package docs registers the console server's OpenAPI document with swag so
// echo-swagger can serve it at /swagger/*.
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
        "/session/login": {
            "post": {
                "tags": ["session"],
                "summary": "Sign in with email and password",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.loginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"},
                    "429": {"description": "Too Many Requests"}
                }
            }
        },
        "/session/token": {
            "post": {
                "tags": ["session"],
                "summary": "Sign in with an existing access token",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.tokenLoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}, "401": {"description": "Unauthorized"}}
            }
        },
        "/session": {
            "get": {"tags": ["session"], "summary": "Current session", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Session"}}, "401": {"description": "Unauthorized"}}},
            "patch": {"tags": ["session"], "summary": "Update session profile fields", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/domain.Session"}}}},
            "delete": {"tags": ["session"], "summary": "Sign out", "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.sessionResponse"}}}}
        },
        "/register": {"post": {"tags": ["session"], "summary": "Register a customer", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/otp/verify": {"post": {"tags": ["session"], "summary": "Verify a one-time password", "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}},
        "/nav": {"get": {"tags": ["navigation"], "summary": "Navigation state", "parameters": [{"in": "query", "name": "route", "type": "string"}], "responses": {"200": {"description": "OK"}}}},
        "/dashboard": {"get": {"tags": ["customer"], "summary": "Customer overview", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/transactions": {"get": {"tags": ["customer"], "summary": "Transaction history", "responses": {"200": {"description": "OK"}}}},
        "/deposit": {"post": {"tags": ["customer"], "summary": "Request a cash deposit", "responses": {"202": {"description": "Accepted"}, "400": {"description": "Bad Request"}}}},
        "/profile": {"get": {"tags": ["customer"], "summary": "Customer profile", "responses": {"200": {"description": "OK"}}}},
        "/chat": {
            "get": {"tags": ["chat"], "summary": "Chat transcript", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["chat"], "summary": "Send a chat message", "responses": {"200": {"description": "OK"}}},
            "delete": {"tags": ["chat"], "summary": "Clear the chat transcript", "responses": {"204": {"description": "No Content"}}}
        },
        "/chat/upload": {"post": {"tags": ["chat"], "summary": "Upload a KYC document", "consumes": ["multipart/form-data"], "responses": {"200": {"description": "OK"}}}},
        "/care/grievances": {"get": {"tags": ["care"], "summary": "List grievances", "responses": {"200": {"description": "OK"}}}},
        "/care/grievances/summary": {"get": {"tags": ["care"], "summary": "AI grievance summary", "responses": {"200": {"description": "OK"}}}},
        "/care/grievances/{id}": {"patch": {"tags": ["care"], "summary": "Update grievance status", "responses": {"200": {"description": "OK"}}}},
        "/care/stats": {"get": {"tags": ["care"], "summary": "Grievance statistics", "responses": {"200": {"description": "OK"}}}},
        "/care/customers/{user_id}": {"get": {"tags": ["care"], "summary": "Customer 360 view", "responses": {"200": {"description": "OK"}}}},
        "/analyst/stats": {"get": {"tags": ["analyst"], "summary": "Analyst statistics", "responses": {"200": {"description": "OK"}}}},
        "/analyst/alerts": {"get": {"tags": ["analyst"], "summary": "Fraud alerts", "responses": {"200": {"description": "OK"}}}},
        "/analyst/blocked": {"get": {"tags": ["analyst"], "summary": "Blocked accounts", "responses": {"200": {"description": "OK"}}}},
        "/analyst/search": {"get": {"tags": ["analyst"], "summary": "Search accounts", "responses": {"200": {"description": "OK"}}}},
        "/analyst/accounts/{account_no}": {"get": {"tags": ["analyst"], "summary": "Account details", "responses": {"200": {"description": "OK"}}}},
        "/analyst/accounts/{account_no}/block": {"post": {"tags": ["analyst"], "summary": "Block an account", "responses": {"200": {"description": "OK"}}}},
        "/analyst/accounts/{account_no}/unblock": {"post": {"tags": ["analyst"], "summary": "Unblock an account", "responses": {"200": {"description": "OK"}}}},
        "/analyst/reports/daily": {"get": {"tags": ["analyst"], "summary": "Daily alerts report", "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/clerk/applications": {"get": {"tags": ["clerk"], "summary": "Pending applications", "responses": {"200": {"description": "OK"}}}},
        "/clerk/applications/{application_no}/approve": {"post": {"tags": ["clerk"], "summary": "Approve an application", "responses": {"200": {"description": "OK"}}}},
        "/clerk/applications/{application_no}/reject": {"post": {"tags": ["clerk"], "summary": "Reject an application", "responses": {"200": {"description": "OK"}}}},
        "/clerk/deposits": {"get": {"tags": ["clerk"], "summary": "Pending deposits", "responses": {"200": {"description": "OK"}}}},
        "/clerk/deposits/{transaction_id}/approve": {"post": {"tags": ["clerk"], "summary": "Approve a deposit", "responses": {"200": {"description": "OK"}}}},
        "/clerk/deposits/{transaction_id}/reject": {"post": {"tags": ["clerk"], "summary": "Reject a deposit", "responses": {"200": {"description": "OK"}}}},
        "/clerk/reports": {"get": {"tags": ["clerk"], "summary": "Generated reports", "responses": {"200": {"description": "OK"}}}},
        "/clerk/reports/{report_id}/download": {"get": {"tags": ["clerk"], "summary": "Download a report", "produces": ["application/pdf"], "responses": {"200": {"description": "OK"}}}},
        "/batch": {
            "post": {
                "tags": ["batch"],
                "summary": "Apply back-office actions in bulk",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/handler.batchRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.batchResponse"}},
                    "207": {"description": "Some items failed", "schema": {"$ref": "#/definitions/handler.batchResponse"}},
                    "400": {"description": "Bad Request"},
                    "401": {"description": "Unauthorized"}
                }
            }
        }
    },
    "definitions": {
        "domain.Session": {
            "type": "object",
            "properties": {
                "userId": {"type": "string"},
                "name": {"type": "string"},
                "email": {"type": "string"},
                "token": {"type": "string"},
                "role": {"type": "string"},
                "accountNo": {"type": "string"},
                "isAuthenticated": {"type": "boolean"}
            }
        },
        "handler.loginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "handler.tokenLoginRequest": {
            "type": "object",
            "required": ["email", "token"],
            "properties": {"email": {"type": "string"}, "token": {"type": "string"}}
        },
        "domain.BatchItem": {
            "type": "object",
            "required": ["action", "target"],
            "properties": {
                "action": {"type": "string", "enum": ["approve-deposit", "reject-deposit", "approve-application", "reject-application", "block-account", "unblock-account"]},
                "target": {"type": "string"},
                "reason": {"type": "string"}
            }
        },
        "handler.batchRequest": {
            "type": "object",
            "required": ["items"],
            "properties": {"items": {"type": "array", "items": {"$ref": "#/definitions/domain.BatchItem"}}}
        },
        "handler.batchResponse": {
            "type": "object",
            "properties": {
                "succeeded": {"type": "integer"},
                "failed": {"type": "integer"},
                "results": {"type": "array", "items": {"type": "object"}}
            }
        },
        "handler.sessionResponse": {
            "type": "object",
            "properties": {"redirect": {"type": "string"}, "session": {"$ref": "#/definitions/domain.Session"}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Vault42 Console API",
	Description:      "Local console over the Vault42 banking API.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

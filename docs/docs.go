// Package docs holds the OpenAPI document served under /swagger.
// Keep it in step with the @Router annotations on the HTTP handlers.
package docs

import "github.com/swaggo/swag/v2"

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
        "/auth/login": {
            "post": {
                "description": "Authenticates a user by email and password and returns a bearer token",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "User login",
                "consumes": [
                    "application/json"
                ],
                "parameters": [
                    {
                        "description": "Login credentials",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/identity.LoginInput"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/identity.LoginResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/auth/me": {
            "get": {
                "description": "User and tenant of the current token",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Current session",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/identity.SessionResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/auth/logout": {
            "post": {
                "description": "Revokes the current token",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "User logout",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/identity.LogoutResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/ventas": {
            "get": {
                "description": "Page of sales with their lines, newest first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sales"
                ],
                "summary": "List sales",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "minimum": 1,
                        "type": "integer",
                        "description": "Page number",
                        "name": "page",
                        "in": "query"
                    },
                    {
                        "maximum": 100,
                        "minimum": 1,
                        "type": "integer",
                        "description": "Page size",
                        "name": "page_size",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Sale status",
                        "name": "estado",
                        "in": "query"
                    },
                    {
                        "enum": [
                            "asc",
                            "desc"
                        ],
                        "type": "string",
                        "description": "Sort direction",
                        "name": "order_dir",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "type": "array",
                                            "items": {
                                                "$ref": "#/definitions/ledger.SaleResponse"
                                            }
                                        },
                                        "meta": {
                                            "$ref": "#/definitions/dto.Meta"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            },
            "post": {
                "description": "Registers a sale, reserving stock and building the credit schedule for credito sales",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sales"
                ],
                "summary": "Create sale",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "string",
                        "description": "Replays the first response for a repeated key",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Sale",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ledger.CreateSaleRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.SaleResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/ventas/metadata": {
            "get": {
                "description": "Enumerations used by sale and credit forms",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sales"
                ],
                "summary": "Sale metadata",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.MetadataResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/ventas/{id}": {
            "get": {
                "description": "One sale with its lines and credit",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sales"
                ],
                "summary": "Get sale",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Sale ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.SaleResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            },
            "put": {
                "description": "Changes the status, payment method or rating of a sale",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sales"
                ],
                "summary": "Update sale",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Sale ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changes",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ledger.UpdateSaleRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.SaleResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            },
            "delete": {
                "description": "Returns the sale if needed and removes it with its credit",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sales"
                ],
                "summary": "Delete sale",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Sale ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.DeleteSaleResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/creditos": {
            "get": {
                "description": "Every credit of the tenant with its schedule and portfolio stats",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "credits"
                ],
                "summary": "List credits",
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.CreditListResult"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        },
        "/creditos/{id}/pagos": {
            "post": {
                "description": "Applies a payment to the credit's installments, oldest due first",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "credits"
                ],
                "summary": "Record credit payment",
                "consumes": [
                    "application/json"
                ],
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Credit ID",
                        "name": "id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Replays the first response for a repeated key",
                        "name": "Idempotency-Key",
                        "in": "header"
                    },
                    {
                        "description": "Payment",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/ledger.RecordPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "data": {
                                            "$ref": "#/definitions/ledger.PaymentResponse"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "422": {
                        "description": "Unprocessable Entity",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "allOf": [
                                {
                                    "$ref": "#/definitions/dto.Response"
                                },
                                {
                                    "type": "object",
                                    "properties": {
                                        "error": {
                                            "$ref": "#/definitions/dto.ErrorInfo"
                                        }
                                    }
                                }
                            ]
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "dto.ErrorInfo": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                },
                "request_id": {
                    "type": "string"
                },
                "details": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/dto.ValidationDetail"
                    }
                }
            }
        },
        "dto.ValidationDetail": {
            "type": "object",
            "properties": {
                "field": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "dto.Meta": {
            "type": "object",
            "properties": {
                "total": {
                    "type": "integer"
                },
                "page": {
                    "type": "integer"
                },
                "page_size": {
                    "type": "integer"
                },
                "total_pages": {
                    "type": "integer"
                }
            }
        },
        "dto.Response": {
            "type": "object",
            "properties": {
                "success": {
                    "type": "boolean"
                },
                "data": {},
                "error": {
                    "$ref": "#/definitions/dto.ErrorInfo"
                },
                "meta": {
                    "$ref": "#/definitions/dto.Meta"
                }
            }
        },
        "identity.LoginInput": {
            "type": "object",
            "properties": {
                "email": {
                    "type": "string",
                    "maxLength": 255
                },
                "password": {
                    "type": "string",
                    "maxLength": 128
                }
            },
            "required": [
                "email",
                "password"
            ]
        },
        "identity.UserResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "nombre": {
                    "type": "string"
                },
                "email": {
                    "type": "string"
                }
            }
        },
        "identity.LoginResult": {
            "type": "object",
            "properties": {
                "token": {
                    "type": "string"
                },
                "expiresAt": {
                    "type": "string"
                },
                "user": {
                    "$ref": "#/definitions/identity.UserResponse"
                },
                "tenant": {
                    "type": "string"
                }
            }
        },
        "identity.SessionResponse": {
            "type": "object",
            "properties": {
                "user": {
                    "$ref": "#/definitions/identity.UserResponse"
                },
                "tenant": {
                    "type": "string"
                }
            }
        },
        "identity.LogoutResult": {
            "type": "object",
            "properties": {
                "ok": {
                    "type": "boolean"
                }
            }
        },
        "ledger.CreateSaleRequest": {
            "type": "object",
            "properties": {
                "clienteId": {
                    "type": "integer"
                },
                "tipoVenta": {
                    "type": "string",
                    "enum": [
                        "contado",
                        "credito"
                    ]
                },
                "medioPago": {
                    "type": "string"
                },
                "descuento": {
                    "type": "string",
                    "example": "150000"
                },
                "notas": {
                    "type": "string",
                    "maxLength": 1000
                },
                "detalles": {
                    "type": "array",
                    "minItems": 1,
                    "items": {
                        "$ref": "#/definitions/ledger.SaleLineInput"
                    }
                },
                "credito": {
                    "$ref": "#/definitions/ledger.CreditTermsInput"
                }
            },
            "required": [
                "clienteId",
                "medioPago",
                "detalles"
            ]
        },
        "ledger.SaleLineInput": {
            "type": "object",
            "properties": {
                "productoId": {
                    "type": "integer"
                },
                "cantidad": {
                    "type": "integer"
                },
                "precioUnitario": {
                    "type": "string",
                    "example": "150000"
                },
                "imei": {
                    "type": "string",
                    "maxLength": 64
                }
            },
            "required": [
                "productoId",
                "cantidad"
            ]
        },
        "ledger.CreditTermsInput": {
            "type": "object",
            "properties": {
                "tipoCredito": {
                    "type": "string",
                    "enum": [
                        "diario",
                        "semanal",
                        "quincenal",
                        "mensual"
                    ]
                },
                "numeroCuotas": {
                    "type": "integer",
                    "minimum": 1,
                    "maximum": 360
                },
                "cuotaInicial": {
                    "type": "string",
                    "example": "150000"
                },
                "fechaPrimeraCuota": {
                    "type": "string",
                    "example": "2024-04-01"
                }
            },
            "required": [
                "tipoCredito",
                "numeroCuotas"
            ]
        },
        "ledger.UpdateSaleRequest": {
            "type": "object",
            "properties": {
                "estado": {
                    "type": "string"
                },
                "medioPago": {
                    "type": "string"
                },
                "calificacion": {
                    "type": "string"
                }
            }
        },
        "ledger.SaleLineResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "productoId": {
                    "type": "integer"
                },
                "cantidad": {
                    "type": "integer"
                },
                "precioUnitario": {
                    "type": "string",
                    "example": "150000"
                },
                "subtotal": {
                    "type": "string",
                    "example": "150000"
                },
                "imei": {
                    "type": "string"
                }
            }
        },
        "ledger.SaleResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "clienteId": {
                    "type": "integer"
                },
                "tipoVenta": {
                    "type": "string"
                },
                "medioPago": {
                    "type": "string"
                },
                "estado": {
                    "type": "string"
                },
                "calificacion": {
                    "type": "string"
                },
                "total": {
                    "type": "string",
                    "example": "150000"
                },
                "descuento": {
                    "type": "string",
                    "example": "150000"
                },
                "notas": {
                    "type": "string"
                },
                "fecha": {
                    "type": "string"
                },
                "detalles": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ledger.SaleLineResponse"
                    }
                },
                "credito": {
                    "$ref": "#/definitions/ledger.CreditResponse"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "ledger.DeleteSaleResult": {
            "type": "object",
            "properties": {
                "deleted": {
                    "type": "boolean"
                },
                "fueDevuelta": {
                    "type": "boolean"
                }
            }
        },
        "ledger.MetadataResponse": {
            "type": "object",
            "properties": {
                "tiposVenta": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "mediosPago": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "estadosVenta": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "tiposCredito": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "estadosCredito": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "estadosCuota": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "calificaciones": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                }
            }
        },
        "ledger.RecordPaymentRequest": {
            "type": "object",
            "properties": {
                "monto": {
                    "type": "string",
                    "example": "150000"
                },
                "fechaPago": {
                    "type": "string",
                    "example": "2024-03-15"
                }
            }
        },
        "ledger.InstallmentResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "numeroCuota": {
                    "type": "integer"
                },
                "fechaVencimiento": {
                    "type": "string"
                },
                "valor": {
                    "type": "string",
                    "example": "150000"
                },
                "valorPagado": {
                    "type": "string",
                    "example": "150000"
                },
                "saldo": {
                    "type": "string",
                    "example": "150000"
                },
                "estado": {
                    "type": "string"
                },
                "fechaPago": {
                    "type": "string"
                }
            }
        },
        "ledger.CreditResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "ventaId": {
                    "type": "integer"
                },
                "tipoCredito": {
                    "type": "string",
                    "enum": [
                        "diario",
                        "semanal",
                        "quincenal",
                        "mensual"
                    ]
                },
                "numeroCuotas": {
                    "type": "integer"
                },
                "cuotaInicial": {
                    "type": "string",
                    "example": "150000"
                },
                "valorCuota": {
                    "type": "string",
                    "example": "150000"
                },
                "saldoTotal": {
                    "type": "string",
                    "example": "150000"
                },
                "montoOriginal": {
                    "type": "string",
                    "example": "150000"
                },
                "montoPagado": {
                    "type": "string",
                    "example": "150000"
                },
                "montoPendiente": {
                    "type": "string",
                    "example": "150000"
                },
                "totalVenta": {
                    "type": "string",
                    "example": "150000"
                },
                "estado": {
                    "type": "string"
                },
                "tieneVencidas": {
                    "type": "boolean"
                },
                "fechaInicio": {
                    "type": "string",
                    "example": "2024-03-01"
                },
                "fechaPrimeraCuota": {
                    "type": "string",
                    "example": "2024-04-01"
                },
                "cuotas": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ledger.InstallmentResponse"
                    }
                },
                "proximaCuota": {
                    "$ref": "#/definitions/ledger.InstallmentResponse"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                }
            }
        },
        "ledger.PaymentAllocationResponse": {
            "type": "object",
            "properties": {
                "monto": {
                    "type": "string",
                    "example": "150000"
                },
                "aplicado": {
                    "type": "string",
                    "example": "150000"
                },
                "sinAplicar": {
                    "type": "string",
                    "example": "150000"
                },
                "cuotasAfectadas": {
                    "type": "array",
                    "items": {
                        "type": "integer"
                    }
                },
                "fechaPago": {
                    "type": "string"
                }
            }
        },
        "ledger.PaymentResponse": {
            "type": "object",
            "properties": {
                "id": {
                    "type": "integer"
                },
                "ventaId": {
                    "type": "integer"
                },
                "tipoCredito": {
                    "type": "string",
                    "enum": [
                        "diario",
                        "semanal",
                        "quincenal",
                        "mensual"
                    ]
                },
                "numeroCuotas": {
                    "type": "integer"
                },
                "cuotaInicial": {
                    "type": "string",
                    "example": "150000"
                },
                "valorCuota": {
                    "type": "string",
                    "example": "150000"
                },
                "saldoTotal": {
                    "type": "string",
                    "example": "150000"
                },
                "montoOriginal": {
                    "type": "string",
                    "example": "150000"
                },
                "montoPagado": {
                    "type": "string",
                    "example": "150000"
                },
                "montoPendiente": {
                    "type": "string",
                    "example": "150000"
                },
                "totalVenta": {
                    "type": "string",
                    "example": "150000"
                },
                "estado": {
                    "type": "string"
                },
                "tieneVencidas": {
                    "type": "boolean"
                },
                "fechaInicio": {
                    "type": "string",
                    "example": "2024-03-01"
                },
                "fechaPrimeraCuota": {
                    "type": "string",
                    "example": "2024-04-01"
                },
                "cuotas": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ledger.InstallmentResponse"
                    }
                },
                "proximaCuota": {
                    "$ref": "#/definitions/ledger.InstallmentResponse"
                },
                "createdAt": {
                    "type": "string"
                },
                "updatedAt": {
                    "type": "string"
                },
                "pago": {
                    "$ref": "#/definitions/ledger.PaymentAllocationResponse"
                }
            }
        },
        "ledger.CreditStats": {
            "type": "object",
            "properties": {
                "totalCreditos": {
                    "type": "integer"
                },
                "montoOtorgado": {
                    "type": "string",
                    "example": "150000"
                },
                "montoCobrado": {
                    "type": "string",
                    "example": "150000"
                },
                "montoPendiente": {
                    "type": "string",
                    "example": "150000"
                },
                "creditosVencidos": {
                    "type": "integer"
                }
            }
        },
        "ledger.CreditListResult": {
            "type": "object",
            "properties": {
                "stats": {
                    "$ref": "#/definitions/ledger.CreditStats"
                },
                "creditos": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/ledger.CreditResponse"
                    }
                }
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Bearer token authentication. Format: \"Bearer {token}\"",
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
	Title:            "Backoffice Ledger API",
	Description:      "Multi-tenant sale and credit ledger",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

// Package docs holds the Swagger 2.0 document served under /swagger.
// It follows swag init output; regenerate it with go generate ./cmd/api
// after changing handler annotations. docs_test.go fails when the routes
// here drift from the @Router annotations.
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
        "/api/executives": {
            "get": {
                "description": "Returns every executive in rotation order.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "List executives",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ListExecutivesResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Adds an executive to the rotation. A palette color is picked when none is given.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Create an executive",
                "parameters": [
                    {
                        "description": "Executive payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httptransport.CreateExecutiveRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/httptransport.CreateExecutiveResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/executives/next": {
            "get": {
                "description": "Returns the executive after the cursor without moving the rotation.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Preview the next executive",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Current rotation cursor",
                        "name": "cursor",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.NextExecutiveResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/executives/skip": {
            "post": {
                "description": "Advances the rotation cursor without creating a client.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Skip the next executive",
                "parameters": [
                    {
                        "description": "Current cursor",
                        "name": "request",
                        "in": "body",
                        "schema": {
                            "$ref": "#/definitions/httptransport.SkipExecutiveRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.SkipExecutiveResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/executives/{executive_id}": {
            "delete": {
                "description": "Removes an executive and all of its clients. The last executive cannot be removed.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Delete an executive",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Executive id",
                        "name": "executive_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.DeleteExecutiveResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/clients": {
            "get": {
                "description": "Returns clients newest first, with their executive's name and color.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "List clients",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Matches client or executive name",
                        "name": "q",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Executive filter",
                        "name": "executive_id",
                        "in": "query"
                    },
                    {
                        "type": "boolean",
                        "description": "Proposal state filter",
                        "name": "proposal_sent",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ListClientsResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "description": "Assigns a client to the given executive, or to the next one in the rotation when executive_id is omitted.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Create a client",
                "parameters": [
                    {
                        "description": "Client payload",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httptransport.CreateClientRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "$ref": "#/definitions/httptransport.CreateClientResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/clients/bulk-manual": {
            "post": {
                "description": "Assigns every new name to one executive. Duplicates are reported, not fatal.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Bulk create clients from a name list",
                "parameters": [
                    {
                        "description": "Names or newline separated text",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httptransport.BulkManualRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.BulkImportResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/clients/bulk-upload": {
            "post": {
                "description": "Accepts .txt, .csv (split on newline, comma and semicolon) or .xlsx (first column of the first sheet).",
                "consumes": [
                    "multipart/form-data"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Bulk create clients from a file",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Name list",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Executive id",
                        "name": "executive_id",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.BulkImportResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/clients/{client_id}": {
            "patch": {
                "description": "Sets the proposal state of a client.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Update a client",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Client id",
                        "name": "client_id",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Client patch",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "$ref": "#/definitions/httptransport.UpdateClientRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.UpdateClientResponse"
                        }
                    },
                    "400": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "tags": [
                    "client-distribution"
                ],
                "summary": "Delete a client",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Client id",
                        "name": "client_id",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/api/dashboard/stats": {
            "get": {
                "description": "Returns totals, conversion rate and per-executive counts.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "client-distribution"
                ],
                "summary": "Dashboard statistics",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "$ref": "#/definitions/httptransport.DashboardStatsResponse"
                        }
                    },
                    "500": {
                        "description": "Error",
                        "schema": {
                            "$ref": "#/definitions/httptransport.ErrorResponse"
                        }
                    }
                }
            }
        }
    },
    "definitions": {
        "httptransport.BulkImportResponse": {
            "type": "object",
            "properties": {
                "batch_id": {
                    "type": "string"
                },
                "created": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httptransport.ClientDTO"
                    }
                },
                "created_count": {
                    "type": "integer"
                },
                "executive_id": {
                    "type": "integer"
                },
                "message": {
                    "type": "string"
                },
                "rejected": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "rejected_count": {
                    "type": "integer"
                },
                "rejections": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httptransport.RejectionDTO"
                    }
                }
            }
        },
        "httptransport.BulkManualRequest": {
            "type": "object",
            "properties": {
                "executive_id": {
                    "type": "integer"
                },
                "names": {
                    "type": "array",
                    "items": {
                        "type": "string"
                    }
                },
                "text": {
                    "type": "string"
                }
            }
        },
        "httptransport.ClientDTO": {
            "type": "object",
            "properties": {
                "created_at": {
                    "type": "string"
                },
                "executive_color": {
                    "type": "string"
                },
                "executive_id": {
                    "type": "integer"
                },
                "executive_name": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "proposal_sent": {
                    "type": "boolean"
                }
            }
        },
        "httptransport.CreateClientRequest": {
            "type": "object",
            "properties": {
                "cursor": {
                    "type": "integer"
                },
                "executive_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "proposal_sent": {
                    "type": "boolean"
                }
            }
        },
        "httptransport.CreateClientResponse": {
            "type": "object",
            "properties": {
                "cursor": {
                    "type": "integer"
                },
                "executive": {
                    "$ref": "#/definitions/httptransport.ExecutiveDTO"
                },
                "item": {
                    "$ref": "#/definitions/httptransport.ClientDTO"
                },
                "rotated": {
                    "type": "boolean"
                }
            }
        },
        "httptransport.CreateExecutiveRequest": {
            "type": "object",
            "properties": {
                "color": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "httptransport.CreateExecutiveResponse": {
            "type": "object",
            "properties": {
                "item": {
                    "$ref": "#/definitions/httptransport.ExecutiveDTO"
                }
            }
        },
        "httptransport.DashboardStatsResponse": {
            "type": "object",
            "properties": {
                "conversion_rate": {
                    "type": "number"
                },
                "executives": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httptransport.ExecutiveStatsDTO"
                    }
                },
                "total_clients": {
                    "type": "integer"
                },
                "total_proposals": {
                    "type": "integer"
                }
            }
        },
        "httptransport.DeleteExecutiveResponse": {
            "type": "object",
            "properties": {
                "executive_id": {
                    "type": "integer"
                },
                "removed_clients": {
                    "type": "integer"
                }
            }
        },
        "httptransport.ErrorResponse": {
            "type": "object",
            "properties": {
                "code": {
                    "type": "string"
                },
                "message": {
                    "type": "string"
                }
            }
        },
        "httptransport.ExecutiveDTO": {
            "type": "object",
            "properties": {
                "color": {
                    "type": "string"
                },
                "created_at": {
                    "type": "string"
                },
                "id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                }
            }
        },
        "httptransport.ExecutiveStatsDTO": {
            "type": "object",
            "properties": {
                "client_count": {
                    "type": "integer"
                },
                "color": {
                    "type": "string"
                },
                "conversion_rate": {
                    "type": "number"
                },
                "executive_id": {
                    "type": "integer"
                },
                "name": {
                    "type": "string"
                },
                "pending_count": {
                    "type": "integer"
                },
                "proposal_count": {
                    "type": "integer"
                }
            }
        },
        "httptransport.ListClientsResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httptransport.ClientDTO"
                    }
                }
            }
        },
        "httptransport.ListExecutivesResponse": {
            "type": "object",
            "properties": {
                "items": {
                    "type": "array",
                    "items": {
                        "$ref": "#/definitions/httptransport.ExecutiveDTO"
                    }
                }
            }
        },
        "httptransport.NextExecutiveResponse": {
            "type": "object",
            "properties": {
                "item": {
                    "$ref": "#/definitions/httptransport.ExecutiveDTO"
                }
            }
        },
        "httptransport.RejectionDTO": {
            "type": "object",
            "properties": {
                "kind": {
                    "type": "string"
                },
                "name": {
                    "type": "string"
                },
                "reason": {
                    "type": "string"
                }
            }
        },
        "httptransport.SkipExecutiveRequest": {
            "type": "object",
            "properties": {
                "cursor": {
                    "type": "integer"
                }
            }
        },
        "httptransport.SkipExecutiveResponse": {
            "type": "object",
            "properties": {
                "cursor": {
                    "type": "integer"
                },
                "next": {
                    "$ref": "#/definitions/httptransport.ExecutiveDTO"
                },
                "skipped": {
                    "$ref": "#/definitions/httptransport.ExecutiveDTO"
                }
            }
        },
        "httptransport.UpdateClientRequest": {
            "type": "object",
            "properties": {
                "proposal_sent": {
                    "type": "boolean"
                }
            }
        },
        "httptransport.UpdateClientResponse": {
            "type": "object",
            "properties": {
                "item": {
                    "$ref": "#/definitions/httptransport.ClientDTO"
                }
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Roster API",
	Description:      "Client distribution across sales executives.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

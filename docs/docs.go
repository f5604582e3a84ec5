// Package docs registers the OpenAPI document of the airsense API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["system"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/resources.HealthStatus"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/errors.APIError"}}
                }
            }
        },
        "/sensors/hourly": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Hourly averages of the caller's readings over the last 24 hours. Without a metrics parameter every metric is returned.",
                "produces": ["application/json"],
                "tags": ["sensors"],
                "summary": "Hourly sensor averages",
                "parameters": [
                    {
                        "type": "array",
                        "items": {"type": "string"},
                        "collectionFormat": "multi",
                        "description": "Metrics to include (humidity, pressure, temperature, gasResistance)",
                        "name": "metrics",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.RollupRow"}}},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/sensors/latest": {
            "get": {
                "security": [{"BearerAuth": []}],
                "description": "Latest raw reading and hourly history of every named device of the caller",
                "produces": ["application/json"],
                "tags": ["sensors"],
                "summary": "Latest readings per device",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/models.DeviceSummary"}}},
                    "401": {"description": "Unauthorized"},
                    "500": {"description": "Internal Server Error"}
                }
            }
        },
        "/data": {
            "post": {
                "security": [{"BearerAuth": []}],
                "description": "Store a reading submitted by the calling device",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["data"],
                "summary": "Record a reading",
                "parameters": [
                    {
                        "description": "Reading values",
                        "name": "reading",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/models.ReadingInput"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Reading"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "401": {"description": "Unauthorized"},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/errors.APIError"}},
                    "500": {"description": "Internal Server Error"}
                }
            }
        }
    },
    "definitions": {
        "errors.APIError": {
            "type": "object",
            "properties": {
                "type": {"type": "string"},
                "message": {"type": "string"},
                "code": {"type": "integer"},
                "request_id": {"type": "string"}
            }
        },
        "models.MetricValues": {
            "type": "object",
            "properties": {
                "humidity": {"type": "number"},
                "pressure": {"type": "number"},
                "temperature": {"type": "number"},
                "gasResistance": {"type": "number"}
            }
        },
        "models.ReadingInput": {
            "type": "object",
            "properties": {
                "humidity": {"type": "number"},
                "pressure": {"type": "number"},
                "temp": {"type": "number"},
                "gasResistance": {"type": "number"}
            }
        },
        "models.Reading": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "deviceId": {"type": "string"},
                "humidity": {"type": "number"},
                "pressure": {"type": "number"},
                "temperature": {"type": "number"},
                "gasResistance": {"type": "number"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.RollupRow": {
            "type": "object",
            "properties": {
                "hour": {"type": "integer", "minimum": 0, "maximum": 23},
                "humidity": {"type": "number"},
                "pressure": {"type": "number"},
                "temperature": {"type": "number"},
                "gasResistance": {"type": "number"}
            }
        },
        "models.DeviceSummary": {
            "type": "object",
            "properties": {
                "device": {"type": "string"},
                "latest": {"$ref": "#/definitions/models.MetricValues"},
                "humidity": {"type": "object", "additionalProperties": {"type": "number"}},
                "pressure": {"type": "object", "additionalProperties": {"type": "number"}},
                "temperature": {"type": "object", "additionalProperties": {"type": "number"}},
                "gasResistance": {"type": "object", "additionalProperties": {"type": "number"}}
            }
        },
        "resources.HealthStatus": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "version": {"type": "string"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "airsense API",
	Description:      "Environmental sensor readings with hourly rollups and per-device summaries.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

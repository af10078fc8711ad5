package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "studydash API",
        "description": "Academic progress dashboard: module enrollments, KPIs and forecasts.",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Programs", "description": "Study program and owner"},
        {"name": "Modules", "description": "Module catalog"},
        {"name": "Enrollments", "description": "Module attempts of a program"},
        {"name": "Dashboard", "description": "KPIs, forecasts and chart series"},
        {"name": "Export", "description": "CSV and PDF reports"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "tags": ["Health"],
                "summary": "Readiness probe",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unavailable", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/active": {
            "get": {
                "tags": ["Programs"],
                "summary": "Most recent program of the bootstrap person",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProgramEnvelope"}},
                    "404": {"description": "No program", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{programId}": {
            "parameters": [{"$ref": "#/parameters/programId"}],
            "get": {
                "tags": ["Programs"],
                "summary": "Get program",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProgramEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "put": {
                "tags": ["Programs"],
                "summary": "Update program targets",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateProgramRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ProgramEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Programs"],
                "summary": "Delete program and its enrollments",
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/api/v1/programs/{programId}/person": {
            "parameters": [{"$ref": "#/parameters/programId"}],
            "get": {
                "tags": ["Programs"],
                "summary": "Get program owner",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Programs"],
                "summary": "Update program owner",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePersonRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Matriculation number taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{programId}/enrollments": {
            "parameters": [{"$ref": "#/parameters/programId"}],
            "get": {
                "tags": ["Enrollments"],
                "summary": "List recent enrollments",
                "parameters": [
                    {"name": "limit", "in": "query", "type": "integer", "description": "Maximum rows (default 200)"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Record a module attempt",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollmentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Program or module not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{programId}/enrollments/{id}": {
            "parameters": [
                {"$ref": "#/parameters/programId"},
                {"name": "id", "in": "path", "required": true, "type": "integer"}
            ],
            "get": {
                "tags": ["Enrollments"],
                "summary": "Get enrollment",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Enrollments"],
                "summary": "Update enrollment",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/EnrollmentRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Delete enrollment",
                "responses": {"204": {"description": "Deleted"}}
            }
        },
        "/api/v1/programs/{programId}/dashboard": {
            "parameters": [{"$ref": "#/parameters/programId"}],
            "get": {
                "tags": ["Dashboard"],
                "summary": "KPIs and chart series of a program",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DashboardEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/programs/{programId}/export": {
            "parameters": [{"$ref": "#/parameters/programId"}],
            "get": {
                "tags": ["Export"],
                "summary": "Download the dashboard report",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Report file", "schema": {"type": "file"}},
                    "400": {"description": "Unsupported format", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/modules": {
            "get": {
                "tags": ["Modules"],
                "summary": "List catalog modules",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Modules"],
                "summary": "Create module",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ModuleRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Title exists", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/api/v1/modules/{id}": {
            "parameters": [{"name": "id", "in": "path", "required": true, "type": "integer"}],
            "get": {
                "tags": ["Modules"],
                "summary": "Get module",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "put": {
                "tags": ["Modules"],
                "summary": "Update module",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ModuleRequest"}}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Modules"],
                "summary": "Delete module",
                "responses": {
                    "204": {"description": "Deleted"},
                    "412": {"description": "Module referenced by enrollments", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "parameters": {
        "programId": {"name": "programId", "in": "path", "required": true, "type": "integer"}
    },
    "definitions": {
        "Program": {
            "type": "object",
            "properties": {
                "id": {"type": "integer"},
                "person_id": {"type": "integer"},
                "name": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "target_semesters": {"type": "integer", "x-nullable": true},
                "target_duration_years": {"type": "number", "x-nullable": true},
                "target_average_grade": {"type": "number"}
            }
        },
        "UpdateProgramRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "start_date": {"type": "string", "description": "YYYY-MM-DD, DD.MM.YYYY or DD.MM.YY"},
                "target_semesters": {"type": "integer"},
                "target_duration_years": {"type": "number"},
                "target_average_grade": {"type": "number", "minimum": 1, "maximum": 5}
            },
            "required": ["name", "start_date"]
        },
        "UpdatePersonRequest": {
            "type": "object",
            "properties": {
                "given_name": {"type": "string"},
                "family_name": {"type": "string"},
                "matriculation_number": {"type": "string"},
                "birth_date": {"type": "string"},
                "address": {"type": "string"}
            },
            "required": ["given_name", "family_name", "matriculation_number"]
        },
        "ModuleRequest": {
            "type": "object",
            "properties": {
                "title": {"type": "string"},
                "credits": {"type": "integer", "minimum": 1},
                "planned_semester": {"type": "integer", "minimum": 1},
                "default_target_date": {"type": "string"}
            },
            "required": ["title", "credits", "planned_semester"]
        },
        "EnrollmentRequest": {
            "type": "object",
            "properties": {
                "module_id": {"type": "integer"},
                "planned_semester": {"type": "integer"},
                "actual_semester": {"type": "integer"},
                "target_date": {"type": "string"},
                "actual_date": {"type": "string"},
                "target_grade": {"type": "number", "minimum": 1, "maximum": 5},
                "actual_grade": {"type": "number", "minimum": 1, "maximum": 5},
                "attempts": {"type": "integer", "minimum": 1}
            },
            "required": ["module_id"]
        },
        "DashboardKPIs": {
            "type": "object",
            "properties": {
                "target_credits": {"type": "integer"},
                "completed_credits": {"type": "integer"},
                "completion_fraction": {"type": "number"},
                "weighted_average_grade": {"type": "number", "x-nullable": true},
                "target_duration_years": {"type": "number"},
                "target_end_date": {"type": "string", "format": "date", "x-nullable": true},
                "reference_date": {"type": "string", "format": "date"},
                "elapsed_days": {"type": "integer"},
                "actual_duration_years": {"type": "number"},
                "duration_delta_years": {"type": "number"},
                "last_completion_date": {"type": "string", "format": "date", "x-nullable": true},
                "pace_forecast_end_date": {"type": "string", "format": "date", "x-nullable": true},
                "pace_forecast_delta_days": {"type": "integer", "x-nullable": true},
                "plan_forecast_end_date": {"type": "string", "format": "date", "x-nullable": true},
                "plan_forecast_delta_days": {"type": "integer", "x-nullable": true},
                "delay_so_far_days": {"type": "integer", "x-nullable": true}
            }
        },
        "DashboardResponse": {
            "type": "object",
            "properties": {
                "program_id": {"type": "integer"},
                "program_name": {"type": "string"},
                "start_date": {"type": "string", "format": "date"},
                "target_average_grade": {"type": "number"},
                "generated_on": {"type": "string", "format": "date"},
                "kpis": {"$ref": "#/definitions/DashboardKPIs"},
                "charts": {
                    "type": "object",
                    "properties": {
                        "grades": {"type": "array", "items": {"type": "object"}},
                        "offsets": {"type": "array", "items": {"type": "object"}},
                        "cumulative_credits": {"type": "array", "items": {"type": "object"}},
                        "cumulative_grade": {"type": "array", "items": {"type": "object"}}
                    }
                }
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
            }
        },
        "ProgramEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/Program"},
                "meta": {"type": "object"}
            }
        },
        "DashboardEnvelope": {
            "type": "object",
            "properties": {
                "data": {"$ref": "#/definitions/DashboardResponse"},
                "meta": {"type": "object"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}

package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "School Enrollment API",
        "description": "Student enrollment and grade/section catalogs",
        "version": "1.0.0"
    },
    "basePath": "/api",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "tags": [
        {"name": "Auth", "description": "Staff authentication"},
        {"name": "Catalogs", "description": "Educational levels, grades and sections"},
        {"name": "Students", "description": "Student enrollment and rosters"}
    ],
    "paths": {
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate user",
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "Token issued", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "429": {"description": "Too many attempts", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/catalogos/niveles": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List educational levels",
                "responses": {
                    "200": {"description": "Levels ordered by id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogos/grados": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List grades",
                "responses": {
                    "200": {"description": "Grades ordered by id", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/catalogos/secciones/{gradeId}": {
            "get": {
                "tags": ["Catalogs"],
                "summary": "List the sections of a grade",
                "parameters": [
                    {"in": "path", "name": "gradeId", "required": true, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Sections ordered by name", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid grade id", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/estudiantes": {
            "get": {
                "tags": ["Students"],
                "summary": "List students of a grade",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "gradeId", "required": true, "type": "integer"},
                    {"in": "query", "name": "sectionId", "required": false, "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "Students", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Invalid filter", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Enroll a student",
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "body", "name": "payload", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "404": {"description": "Section not found", "schema": {"$ref": "#/definitions/ErrorEnvelope"}},
                    "409": {"description": "Section full, inactive or mismatched", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        },
        "/estudiantes/export": {
            "get": {
                "tags": ["Students"],
                "summary": "Download the student roster of a grade",
                "produces": ["text/csv", "application/pdf"],
                "security": [{"BearerAuth": []}],
                "parameters": [
                    {"in": "query", "name": "gradeId", "required": true, "type": "integer"},
                    {"in": "query", "name": "sectionId", "required": false, "type": "integer"},
                    {"in": "query", "name": "format", "required": false, "type": "string", "enum": ["csv", "pdf"], "default": "csv"}
                ],
                "responses": {
                    "200": {"description": "Roster file", "schema": {"type": "file"}},
                    "400": {"description": "Invalid filter or format", "schema": {"$ref": "#/definitions/ErrorEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            }
        },
        "CreateStudentRequest": {
            "type": "object",
            "required": ["name", "birthDate", "gradeId", "sectionId"],
            "properties": {
                "dpi": {"type": "string"},
                "name": {"type": "string"},
                "birthDate": {"type": "string", "example": "2015-03-01"},
                "gender": {"type": "string"},
                "address": {"type": "string"},
                "phone": {"type": "string"},
                "email": {"type": "string"},
                "avatarUrl": {"type": "string"},
                "gradeId": {"type": "integer"},
                "sectionId": {"type": "integer"},
                "enrollmentDate": {"type": "string"},
                "status": {"type": "string", "enum": ["activo", "inactivo", "retirado", "graduado"]}
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
                "meta": {"type": "object"}
            }
        },
        "ErrorEnvelope": {
            "type": "object",
            "properties": {
                "error": {"$ref": "#/definitions/APIError"}
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

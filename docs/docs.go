// Package docs содержит описание HTTP API для Swagger UI.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/users/registerUser": {
            "post": {
                "tags": ["Users"], "summary": "Регистрация пользователя",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/register.Request"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/login": {
            "post": {
                "tags": ["Users"], "summary": "Вход пользователя",
                "consumes": ["application/json"], "produces": ["application/json"],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/login.Request"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/users/logout": {
            "post": {"tags": ["Users"], "summary": "Выход пользователя", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/users/getUser": {
            "get": {"tags": ["Users"], "summary": "Текущий пользователь", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/users/updateAccountDetails": {
            "patch": {"tags": ["Users"], "summary": "Изменение данных учетной записи", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/users/changePassword": {
            "patch": {"tags": ["Users"], "summary": "Смена пароля", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/users/updateUserAvatar": {
            "patch": {"tags": ["Users"], "summary": "Смена аватара", "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [{"in": "formData", "name": "avatar", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/users/updateCoverImage": {
            "patch": {"tags": ["Users"], "summary": "Смена обложки", "security": [{"BearerAuth": []}],
                "consumes": ["multipart/form-data"],
                "parameters": [{"in": "formData", "name": "coverImage", "type": "file", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/users/getUserByName/{username}": {
            "get": {"tags": ["Users"], "summary": "Поиск пользователей",
                "parameters": [{"in": "path", "name": "username", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/qr/generate": {
            "post": {"tags": ["QR"], "summary": "Выпуск QR-кода", "security": [{"BearerAuth": []}],
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/generate.Request"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/qr/details": {
            "get": {"tags": ["QR"], "summary": "Данные QR-кода",
                "parameters": [{"in": "query", "name": "qrId", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/qr/validate/{qrId}": {
            "get": {"tags": ["QR"], "summary": "Проверка QR-кода",
                "parameters": [{"in": "path", "name": "qrId", "type": "string", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "410": {"description": "Gone", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/qr/mine": {
            "get": {"tags": ["QR"], "summary": "Мои QR-коды", "security": [{"BearerAuth": []}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        },
        "/photo/upload": {
            "post": {"tags": ["Photo"], "summary": "Загрузка фотографии",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"in": "formData", "name": "qrId", "type": "string", "required": true},
                    {"in": "formData", "name": "uploadedBy", "type": "string", "enum": ["Owner", "Guest"]},
                    {"in": "formData", "name": "file", "type": "file", "required": true}
                ],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/response.Response"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/photo/forQRCode": {
            "post": {"tags": ["Photo"], "summary": "Фотографии QR-кода",
                "parameters": [{"in": "body", "name": "request", "required": true, "schema": {"$ref": "#/definitions/forqrcode.Request"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}}}
        },
        "/health": {
            "get": {"tags": ["Health"], "summary": "Проверка состояния",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/response.Response"}}}}
        }
    },
    "definitions": {
        "response.Response": {"type": "object", "properties": {
            "status": {"type": "integer", "example": 200}, "data": {}, "message": {"type": "string"}, "success": {"type": "boolean"}}},
        "response.ErrorResponse": {"type": "object", "properties": {
            "statusCode": {"type": "integer", "example": 400}, "message": {"type": "string"}, "success": {"type": "boolean", "example": false}}},
        "register.Request": {"type": "object", "required": ["username", "email", "fullName", "password", "location"], "properties": {
            "username": {"type": "string"}, "email": {"type": "string"}, "fullName": {"type": "string"}, "password": {"type": "string"},
            "accountType": {"type": "string", "enum": ["Customer", "Restaurant"]},
            "location": {"type": "object", "properties": {"type": {"type": "string", "example": "Point"}, "coordinates": {"type": "array", "items": {"type": "number"}}}}}},
        "login.Request": {"type": "object", "required": ["email", "password"], "properties": {
            "email": {"type": "string"}, "password": {"type": "string"}}},
        "generate.Request": {"type": "object", "required": ["validTill"], "properties": {
            "validTill": {"type": "string", "format": "date-time"}}},
        "forqrcode.Request": {"type": "object", "required": ["qrId"], "properties": {
            "qrId": {"type": "string"}}}
    }
}`

// SwaggerInfo метаданные API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "QR Moments API",
	Description:      "QR-коды ресторанов, фотографии гостей и ежедневная рассылка.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

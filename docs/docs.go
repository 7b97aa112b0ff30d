package docs

import "github.com/swaggo/swag"

const docTemplate = `{
  "swagger": "2.0",
  "info": {
    "title": "KPI Tracker API",
    "description": "Monthly developer KPI generation, history, team summary and CSV export",
    "version": "1.0"
  },
  "basePath": "/",
  "paths": {
    "/healthz": {"get": {"tags": ["health"], "summary": "Liveness and storage check", "responses": {"200": {"description": "ok"}, "503": {"description": "storage unavailable"}}}},
    "/api/config": {
      "get": {"tags": ["config"], "summary": "Scoring configuration", "responses": {"200": {"description": "ok"}}},
      "put": {"tags": ["config"], "summary": "Replace scoring configuration", "consumes": ["application/json"], "parameters": [{"name": "X-Admin-Key", "in": "header", "required": true, "type": "string"}, {"name": "body", "in": "body", "required": true, "schema": {"type": "object"}}], "responses": {"200": {"description": "ok"}, "400": {"description": "invalid config"}, "401": {"description": "missing admin key"}}}
    },
    "/api/developers/{id}/kpi": {
      "get": {"tags": ["kpi"], "summary": "Stored monthly KPI", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "month", "in": "query", "required": true, "type": "integer"}, {"name": "year", "in": "query", "required": true, "type": "integer"}], "responses": {"200": {"description": "ok"}, "404": {"description": "not found"}}},
      "post": {"tags": ["kpi"], "summary": "Generate monthly KPI", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "X-Admin-Key", "in": "header", "type": "string"}], "responses": {"200": {"description": "ok"}, "400": {"description": "invalid period"}, "404": {"description": "developer not found"}}}
    },
    "/api/developers/{id}/kpi/current": {"get": {"tags": ["kpi"], "summary": "Current month preview", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "ok"}}}},
    "/api/developers/{id}/kpi/history": {"get": {"tags": ["kpi"], "summary": "KPI history", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "ok"}}}},
    "/api/kpi/generate": {"post": {"tags": ["kpi"], "summary": "Generate KPIs for all active developers", "parameters": [{"name": "X-Admin-Key", "in": "header", "type": "string"}], "responses": {"200": {"description": "ok"}}}},
    "/api/kpi/team": {"get": {"tags": ["kpi"], "summary": "Team KPI", "parameters": [{"name": "month", "in": "query", "type": "integer"}, {"name": "year", "in": "query", "type": "integer"}], "responses": {"200": {"description": "ok"}}}},
    "/api/kpi/export": {"get": {"tags": ["kpi"], "summary": "Export KPI as CSV", "produces": ["text/csv"], "parameters": [{"name": "developer_id", "in": "query", "type": "string"}, {"name": "month", "in": "query", "type": "integer"}, {"name": "year", "in": "query", "type": "integer"}], "responses": {"200": {"description": "csv"}}}}
  }
}`

func init() {
	swag.Register(swag.Name, &s{})
}

type s struct{}

func (s *s) ReadDoc() string {
	return docTemplate
}

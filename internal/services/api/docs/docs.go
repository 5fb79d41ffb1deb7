// Package docs registers the OpenAPI document served by swaggerkit
package docs

import "github.com/swaggo/swag/v2"

const docTemplate = `{
	"openapi": "3.0.3",
	"info": {"title": "{{.Title}}", "description": "{{.Description}}", "version": "{{.Version}}"},
	"paths": {
		"/meta/health": {"get":{"tags":["meta"],"summary":"Liveness","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}}}}},
		"/meta/ready": {"get":{"tags":["meta"],"summary":"Readiness of postgres and clickhouse","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}}}}},
		"/meta/version": {"get":{"tags":["meta"],"summary":"Build version","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}}}}},
		"/meta/service": {"get":{"tags":["meta"],"summary":"Service info","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}}}}},
		"/babies": {"get":{"tags":["babies"],"summary":"List babies of the caller","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}]},"post":{"tags":["babies"],"summary":"Create a baby","responses":{"201":{"description":"Created","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/CreateBaby"}}}}}},
		"/babies/{babyID}": {"get":{"tags":["babies"],"summary":"Get a baby","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]},"patch":{"tags":["babies"],"summary":"Update a baby","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/UpdateBaby"}}}},"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]},"delete":{"tags":["babies"],"summary":"Delete a baby","responses":{"204":{"description":"No Content"},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/members": {"get":{"tags":["babies"],"summary":"List members","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/members/{userID}": {"delete":{"tags":["babies"],"summary":"Remove a member","responses":{"204":{"description":"No Content"},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"userID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/leave": {"post":{"tags":["babies"],"summary":"Leave a baby","responses":{"204":{"description":"No Content"},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/invitations": {"get":{"tags":["invitations"],"summary":"List pending invitations","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]},"post":{"tags":["invitations"],"summary":"Invite a caregiver","responses":{"201":{"description":"Created","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/CreateInvitation"}}}},"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/invitations/{invitationID}": {"delete":{"tags":["invitations"],"summary":"Revoke an invitation","responses":{"204":{"description":"No Content"},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"invitationID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/invitations/{token}": {"get":{"tags":["invitations"],"summary":"Look up an invitation","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}}},"parameters":[{"name":"token","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/invitations/{token}/accept": {"post":{"tags":["invitations"],"summary":"Accept an invitation","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"token","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/foods": {"get":{"tags":["foods"],"summary":"Food library","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"category","in":"query","required":false,"schema":{"type":"string"}}]},"post":{"tags":["foods"],"summary":"Add a food","responses":{"201":{"description":"Created","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/CreateFood"}}}},"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/foods/{foodID}": {"delete":{"tags":["foods"],"summary":"Delete a food","responses":{"204":{"description":"No Content"},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"foodID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/foods/{foodID}/dismissed": {"put":{"tags":["foods"],"summary":"Hide or show a food in statistics","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/SetDismissed"}}}},"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"foodID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/logs": {"get":{"tags":["logs"],"summary":"Feeding logs in a range","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"start","in":"query","required":false,"schema":{"type":"string","format":"date-time"}},{"name":"end","in":"query","required":false,"schema":{"type":"string","format":"date-time"}},{"name":"food_id","in":"query","required":false,"schema":{"type":"string","format":"uuid"}},{"name":"reaction","in":"query","required":false,"schema":{"type":"string","enum":["loved","okay","disliked"]}}]},"post":{"tags":["logs"],"summary":"Log a feeding","responses":{"201":{"description":"Created","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/CreateLog"}}}},"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/logs/{logID}": {"patch":{"tags":["logs"],"summary":"Edit a feeding","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"requestBody":{"required":true,"content":{"application/json":{"schema":{"$ref":"#/components/schemas/UpdateLog"}}}},"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"logID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]},"delete":{"tags":["logs"],"summary":"Delete a feeding","responses":{"204":{"description":"No Content"},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"logID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}}]}},
		"/babies/{babyID}/calendar": {"get":{"tags":["calendar"],"summary":"Calendar window with clustered feedings","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"view","in":"query","required":false,"schema":{"type":"string","enum":["day","week","month"]}},{"name":"date","in":"query","required":false,"schema":{"type":"string","format":"date"},"description":"anchor date YYYY-MM-DD"},{"name":"tz","in":"query","required":false,"schema":{"type":"string"},"description":"IANA zone overriding the baby zone"}]}},
		"/babies/{babyID}/calendar/ics": {"get":{"tags":["calendar"],"summary":"Calendar window as iCalendar","responses":{"200":{"description":"OK","content":{"text/calendar":{"schema":{"type":"string"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"view","in":"query","required":false,"schema":{"type":"string","enum":["day","week","month"]}},{"name":"date","in":"query","required":false,"schema":{"type":"string","format":"date"},"description":"anchor date YYYY-MM-DD"},{"name":"tz","in":"query","required":false,"schema":{"type":"string"},"description":"IANA zone overriding the baby zone"}]}},
		"/babies/{babyID}/stats/foods": {"get":{"tags":["stats"],"summary":"Foods with their latest feeding","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"reactions","in":"query","required":false,"schema":{"type":"string"},"description":"comma separated reactions, none for no reaction"},{"name":"include_dismissed","in":"query","required":false,"schema":{"type":"string"}}]}},
		"/babies/{babyID}/stats/heatmap": {"get":{"tags":["stats"],"summary":"Feedings per day","responses":{"200":{"description":"OK","content":{"application/json":{"schema":{"$ref":"#/components/schemas/Envelope"}}}},"401":{"description":"Unauthorized"}},"security":[{"bearerAuth":[]}],"parameters":[{"name":"babyID","in":"path","required":true,"schema":{"type":"string","format":"uuid"}},{"name":"start","in":"query","required":false,"schema":{"type":"string","format":"date"}},{"name":"end","in":"query","required":false,"schema":{"type":"string","format":"date"}}]}}
	},
	"components": {
		"securitySchemes": {"bearerAuth": {"type": "http", "scheme": "bearer", "bearerFormat": "JWT"}},
		"schemas": {
			"Envelope": {"type": "object", "properties": {"status_code": {"type": "integer"}, "status": {"type": "string"}, "request_id": {"type": "string"}, "data": {}}},
			"CreateBaby": {"type": "object", "properties": {"name": {"type": "string"}, "date_of_birth": {"type": "string", "format": "date"}, "time_zone": {"type": "string"}}, "required": ["name", "date_of_birth"]},
			"UpdateBaby": {"type": "object", "properties": {"name": {"type": "string"}, "time_zone": {"type": "string"}}},
			"CreateInvitation": {"type": "object", "properties": {"email": {"type": "string", "format": "email"}}, "required": ["email"]},
			"CreateFood": {"type": "object", "properties": {"name": {"type": "string"}, "categories": {"type": "array", "items": {"type": "string", "enum": ["fruit", "veggie", "grain", "protein", "dairy", "snack", "other"]}}}, "required": ["name"]},
			"SetDismissed": {"type": "object", "properties": {"dismissed": {"type": "boolean"}}},
			"CreateLog": {"type": "object", "properties": {"food_item_id": {"type": "string", "format": "uuid"}, "fed_at": {"type": "string", "format": "date-time"}, "notes": {"type": "string"}, "reaction": {"type": "string", "enum": ["loved", "okay", "disliked"]}}, "required": ["food_item_id", "fed_at"]},
			"UpdateLog": {"type": "object", "properties": {"fed_at": {"type": "string", "format": "date-time"}, "notes": {"type": "string"}, "reaction": {"type": "string", "enum": ["loved", "okay", "disliked"]}, "clear_reaction": {"type": "boolean"}}}
		}
	}
}`

// SwaggerInfo holds the document metadata; the composition root sets Version at startup
var SwaggerInfo = &swag.Spec{
	Version:          "dev",
	Title:            "babyfood API",
	Description:      "Feeding logs, food library, calendar and statistics for shared baby profiles",
	InfoInstanceName: "api",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}

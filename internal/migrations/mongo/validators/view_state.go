package validators

import "go.mongodb.org/mongo-driver/bson"

var ViewStateValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"role",
			"status_filter",
			"sort_by",
			"sort_order",
			"current_page",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"role": bson.M{
				"enum": []string{"client", "host", "agent"},
			},

			"status_filter": bson.M{
				"bsonType":  "string",
				"maxLength": 32,
			},

			"search_term": bson.M{
				"bsonType":  "string",
				"maxLength": 200,
			},

			"sort_by": bson.M{
				"bsonType":  "string",
				"maxLength": 64,
			},

			"sort_order": bson.M{
				"enum": []string{"asc", "desc"},
			},

			"current_page": bson.M{
				"bsonType": []string{"int", "long"},
				"minimum":  1,
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

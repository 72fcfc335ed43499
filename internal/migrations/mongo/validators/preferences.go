package validators

import "go.mongodb.org/mongo-driver/bson"

var PreferencesValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"user_id",
			"currency",
			"language",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"user_id": bson.M{
				"bsonType":  "string",
				"minLength": 1,
				"maxLength": 64,
			},

			"currency": bson.M{
				"enum": []string{"UZS", "USD", "EUR", "RUB"},
			},

			"language": bson.M{
				"enum": []string{"en", "ru", "uz"},
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

package validators

import "go.mongodb.org/mongo-driver/bson"

var BookingValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"patient_name",
			"email",
			"mobile_number",
			"booking_date_time",
			"reason",
			"order_id",
			"amount",
			"status",
			"created_at",
			"updated_at",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"patient_name": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"email": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"mobile_number": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"booking_date_time": bson.M{
				"bsonType": "date",
			},

			"reason": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"order_id": bson.M{
				"bsonType": "string",
				"pattern":  "^ORDER_[0-9]+_[0-9a-z]+$",
			},

			"amount": bson.M{
				"bsonType": []string{"double", "int", "long", "decimal"},
				"minimum":  0,
			},

			"currency": bson.M{
				"bsonType":  "string",
				"minLength": 3,
				"maxLength": 3,
			},

			// Unrecognized provider statuses are stored lower-cased, so status is not an enum.
			"status": bson.M{
				"bsonType":  "string",
				"minLength": 1,
			},

			"payment_id":      bson.M{"bsonType": "string"},
			"payment_method":  bson.M{"bsonType": "string"},
			"payment_time":    bson.M{"bsonType": "string"},
			"bank_reference":  bson.M{"bsonType": "string"},
			"payment_message": bson.M{"bsonType": "string"},

			"created_at": bson.M{
				"bsonType": "date",
			},

			"updated_at": bson.M{
				"bsonType": "date",
			},
		},
	},
}

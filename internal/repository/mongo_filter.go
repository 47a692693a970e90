package repository

import (
	"property-service/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names in the document store.
const (
	propertiesCollection       = "properties"
	inquiriesCollection        = "inquiries"
	generalInquiriesCollection = "generalinquiries"
	usersCollection            = "users"
)

func propertyFilterDoc(f model.PropertyFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PropertyType != "" {
		filter["propertyType"] = f.PropertyType
	}
	if f.TransactionType != "" {
		filter["transactionType"] = f.TransactionType
	}
	if f.Area != "" {
		filter["address.area"] = f.Area
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price := bson.M{}
		if f.MinPrice != nil {
			price["$gte"] = *f.MinPrice
		}
		if f.MaxPrice != nil {
			price["$lte"] = *f.MaxPrice
		}
		filter["price"] = price
	}
	return filter
}

func inquiryFilterDoc(f model.InquiryFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.PropertyID != "" {
		filter["property"] = f.PropertyID
	}
	return filter
}

func pageOptions(page model.Page) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Skip())).
		SetLimit(int64(page.Limit))
}

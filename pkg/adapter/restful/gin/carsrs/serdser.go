// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package carsrs

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/model"
)

type carIDReq struct {
	CarID string `uri:"cid" binding:"required,uuid"`
}

type rawAvailabilityReq struct {
	Start string `form:"start" binding:"required,datetime=2006-01-02"`
	End   string `form:"end" binding:"required,datetime=2006-01-02"`
}

type availabilityReq struct {
	CarID      uuid.UUID
	Start, End time.Time
}

type rawCarUpdateReq struct {
	Op     string `form:"op" binding:"required,oneof=status track"`
	Status string `form:"status" binding:"omitempty"`
	Dst    StrCoordinate
}

// StrCoordinate is a coordinate whose latitude and longitude are
// passed as query parameters.
type StrCoordinate struct {
	Lat string `form:"lat" binding:"omitempty,latitude"`
	Lon string `form:"lon" binding:"omitempty,longitude"`
}

type carUpdateReq struct {
	CarID  uuid.UUID
	Op     string
	Status model.CarStatus
	Dst    model.Coordinate
}

func (sc StrCoordinate) ToModel() (c model.Coordinate, err error) {
	c.Lat, err = strconv.ParseFloat(sc.Lat, 64)
	if err != nil {
		return
	}
	c.Lon, err = strconv.ParseFloat(sc.Lon, 64)
	return
}

func dserCarID(c *gin.Context) (uuid.UUID, bool) {
	req := &carIDReq{}
	if !serdser.BindURI(c, req) {
		return uuid.Nil, false
	}
	cid, err := uuid.Parse(req.CarID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "cid", "Path param cid is not UUID.")
		serdser.Invalid(c, errs)
		return uuid.Nil, false
	}
	return cid, true
}

func dserAvailabilityReq(c *gin.Context) *availabilityReq {
	cid, ok := dserCarID(c)
	if !ok {
		return nil
	}
	req := &rawAvailabilityReq{}
	if !serdser.Bind(c, req, binding.Query) {
		return nil
	}
	val := &availabilityReq{CarID: cid}
	var errs map[string][]string
	var err error
	val.Start, err = time.ParseInLocation(time.DateOnly, req.Start, time.UTC)
	serdser.Assert(&errs, err == nil, "start", "The start is not a YYYY-MM-DD date.")
	val.End, err = time.ParseInLocation(time.DateOnly, req.End, time.UTC)
	serdser.Assert(&errs, err == nil, "end", "The end is not a YYYY-MM-DD date.")
	if errs != nil {
		serdser.Invalid(c, errs)
		return nil
	}
	return val
}

func dserUpdateCarReq(c *gin.Context) *carUpdateReq {
	cid, ok := dserCarID(c)
	if !ok {
		return nil
	}
	req := &rawCarUpdateReq{}
	if !serdser.Bind(c, req, binding.Query) {
		return nil
	}
	val := &carUpdateReq{CarID: cid, Op: req.Op}
	var errs map[string][]string
	var err error
	switch req.Op {
	case "status":
		if serdser.Assert(&errs, req.Dst.Lat == "" && req.Dst.Lon == "", "lat/lon", "The op=status does not need lat/lon.") &&
			serdser.Assert(&errs, req.Status != "", "status", "The op=status requires status.") {
			val.Status, err = model.ParseCarStatus(req.Status)
			if err != nil {
				serdser.AddErr(&errs, "status", err.Error())
			}
		}
	case "track":
		if serdser.Assert(&errs, req.Dst.Lat != "" && req.Dst.Lon != "", "lat/lon", "The op=track requires lat and lon.") &&
			serdser.Assert(&errs, req.Status == "", "status", "The op=track does not need status.") {
			val.Dst, err = req.Dst.ToModel()
			if err != nil {
				serdser.AddErr(&errs, "lat/lon", err.Error())
			}
		}
	default:
		panic("unknown op")
	}
	if errs != nil {
		serdser.Invalid(c, errs)
		return nil
	}
	return val
}

// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package notificationsrs realizes the notifications resource.
package notificationsrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/authmw"
	"github.com/momeni/car-rental/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/car-rental/pkg/core/usecase/notificationsuc"
)

type resource struct {
	notifications *notificationsuc.UseCase
}

type notificationIDReq struct {
	NotificationID string `uri:"nid" binding:"required,uuid"`
}

// Register instantiates a resource adapting the notifications use
// case instance with the GET /notifications and
// POST /notifications/:nid/read REST APIs.
func Register(r *gin.RouterGroup, notifications *notificationsuc.UseCase) {
	rs := &resource{notifications: notifications}
	r.GET("notifications", rs.List)
	r.POST("notifications/:nid/read", rs.MarkRead)
}

func (rs *resource) List(c *gin.Context) {
	ns, err := rs.notifications.ListMine(c, authmw.Caller(c))
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Notifications retrieved", ns)
}

func (rs *resource) MarkRead(c *gin.Context) {
	req := &notificationIDReq{}
	if !serdser.BindURI(c, req) {
		return
	}
	nid, err := uuid.Parse(req.NotificationID)
	if err != nil {
		var errs map[string][]string
		serdser.AddErr(&errs, "nid", "Path param nid is not UUID.")
		serdser.Invalid(c, errs)
		return
	}
	if err = rs.notifications.MarkRead(c, authmw.Caller(c), nid); err != nil {
		serdser.SerErr(c, err)
		return
	}
	serdser.Ok(c, http.StatusOK, "Notification marked as read", nil)
}

package handler

import (
	"github.com/gin-gonic/gin"

	"campus-board/internal/dto"
	"campus-board/pkg/response"
)

// adminResources 管理后台注册的资源
var adminResources = []dto.ResourceResponse{
	{Name: "Post", Path: "/api/v1/admin/posts", Methods: []string{"GET", "POST", "PUT", "DELETE"}},
	{Name: "Session", Path: "/api/v1/admin/sessions", Methods: []string{"GET", "POST", "PUT", "DELETE"}},
	{Name: "Semester", Path: "/api/v1/admin/semesters", Methods: []string{"GET", "POST", "PUT", "DELETE"}},
	{Name: "ActivityLog", Path: "/api/v1/admin/activity-logs", Methods: []string{"GET"}, ReadOnly: true},
}

// AdminIndex 列出管理后台已注册资源
// GET /api/v1/admin
func AdminIndex(c *gin.Context) {
	response.OK(c, gin.H{"list": adminResources})
}

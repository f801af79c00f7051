package handler

import (
	"github.com/gin-gonic/gin"

	"aiptrack/backend/pkg/response"
)

// ResourceStub serves a resource that has routes but no storage yet:
// listing is empty and everything else answers 501.
type ResourceStub struct {
	name string
}

func NewResourceStub(name string) *ResourceStub {
	return &ResourceStub{name: name}
}

func (h *ResourceStub) List(c *gin.Context) {
	response.OK(c, []struct{}{})
}

func (h *ResourceStub) Create(c *gin.Context) {
	response.NotImplemented(c, h.name+" creation not implemented yet")
}

func (h *ResourceStub) Get(c *gin.Context) {
	response.NotImplemented(c, h.name+" detail not implemented yet")
}

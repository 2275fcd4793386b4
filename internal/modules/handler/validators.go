package handler

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// nodePath rejects bare roots and traversal segments before the service
// layer normalizes the path.
func nodePath(fl validator.FieldLevel) bool {
	p := strings.TrimSpace(fl.Field().String())
	if p == "" || p == "/" {
		return false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return false
		}
	}
	return true
}

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("nodepath", nodePath)
	}
}

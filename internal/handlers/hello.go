// Package handlers contains HTTP request handlers for the hello service.
package handlers

import (
	"encoding/json"
	"net/http"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/sebasr/hello-service/internal/metrics"
	"github.com/sebasr/hello-service/internal/models"
)

// HelloHandler echoes a name back wrapped in a HelloResponse
type HelloHandler struct {
	defaultName string
	logger      zerolog.Logger
}

// NewHelloHandler creates a hello handler greeting defaultName when no name is given
func NewHelloHandler(defaultName string, logger zerolog.Logger) *HelloHandler {
	return &HelloHandler{
		defaultName: defaultName,
		logger:      logger,
	}
}

// GetDefault greets the default name
// GET /hello
func (h *HelloHandler) GetDefault(c *gin.Context) {
	metrics.GreetingServed(metrics.SourceDefault)
	c.JSON(http.StatusOK, models.NewHelloResponse(h.defaultName))
}

// GetByName greets the name taken from the path.
// Names that are not valid UTF-8 are rejected, JSON cannot carry them unchanged.
// GET /hello/:name
func (h *HelloHandler) GetByName(c *gin.Context) {
	name := c.Param("name")
	if !utf8.ValidString(name) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Name must be valid UTF-8",
		})
		return
	}

	metrics.GreetingServed(metrics.SourcePath)
	c.JSON(http.StatusOK, models.NewHelloResponse(name))
}

// Post greets the name taken from the JSON body.
// A missing or null name is rejected; the GET default does not apply here.
// POST /hello
func (h *HelloHandler) Post(c *gin.Context) {
	var req models.HelloRequest

	// Anything after the JSON object makes the payload invalid
	body, err := c.GetRawData()
	if err == nil {
		err = json.Unmarshal(body, &req)
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Invalid JSON payload",
		})
		return
	}

	if !req.HasName() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "Missing required field: name",
		})
		return
	}

	h.logger.Debug().Str("name", *req.Name).Msg("received hello request")

	metrics.GreetingServed(metrics.SourceBody)
	c.JSON(http.StatusOK, models.NewHelloResponse(*req.Name))
}

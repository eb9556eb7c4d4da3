package http

import (
	"session-store/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CreateSession func - Mints a fresh session id and stores the payload
func (hdl *HTTPHandler) CreateSession(c *fiber.Ctx) error {
	var request SessionRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		msg := ResponseBody{
			Status: BadRequest,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusBadRequest).JSON(msg)
	}

	sid := uuid.NewString()
	if err := hdl.srv.Set(sid, domain.SessionData(request.Data)); err != nil {
		msg := ResponseBody{
			Status: InternalServerError,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusInternalServerError).JSON(msg)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SessionResponse{ID: sid, Data: request.Data}})
}

// SetSession func - Upserts the payload under the given session id
func (hdl *HTTPHandler) SetSession(c *fiber.Ctx) error {
	sid, err := hdl.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	var request SessionRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.srv.Set(sid, domain.SessionData(request.Data)); err != nil {
		msg := ResponseBody{
			Status: InternalServerError,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusInternalServerError).JSON(msg)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SessionResponse{ID: sid, Data: request.Data}})
}

// GetSession func - Reads a visible session; absent sessions map to 404
func (hdl *HTTPHandler) GetSession(c *fiber.Ctx) error {
	sid, err := hdl.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	sess, err := hdl.srv.Get(sid)
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	if sess == nil {
		return c.Status(fiber.StatusNotFound).JSON(ResponseBody{Status: NotFound})
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: SessionResponse{ID: sid, Data: sess}})
}

// TouchSession func - Extends a session's expiry without altering it
func (hdl *HTTPHandler) TouchSession(c *fiber.Ctx) error {
	sid, err := hdl.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	var request SessionRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.srv.Touch(sid, domain.SessionData(request.Data)); err != nil {
		msg := ResponseBody{
			Status: InternalServerError,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusInternalServerError).JSON(msg)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// DestroySession func - Soft-deletes a single session by path id
func (hdl *HTTPHandler) DestroySession(c *fiber.Ctx) error {
	sid, err := hdl.sessionID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.srv.Destroy(sid); err != nil {
		msg := ResponseBody{
			Status: InternalServerError,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusInternalServerError).JSON(msg)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// DestroySessions func - Soft-deletes a batch of session ids
func (hdl *HTTPHandler) DestroySessions(c *fiber.Ctx) error {
	var request DestroyRequest
	if err := c.BodyParser(&request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.validator.ValidateStruct(request); err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusBadRequest).JSON(ResponseBody{Status: BadRequest})
	}
	if err := hdl.srv.Destroy(request.IDs...); err != nil {
		msg := ResponseBody{
			Status: InternalServerError,
		}
		msg.Status.Message = []string{
			err.Error(),
		}
		return c.Status(fiber.StatusInternalServerError).JSON(msg)
	}
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success})
}

// ListSessions func - Enumerates every visible session
func (hdl *HTTPHandler) ListSessions(c *fiber.Ctx) error {
	sessions, err := hdl.srv.All()
	if err != nil {
		logrus.Errorln(err)
		return c.Status(fiber.StatusInternalServerError).JSON(ResponseBody{Status: InternalServerError})
	}
	if sessions == nil {
		sessions = make([]domain.SessionData, 0)
	}
	total := len(sessions)
	return c.Status(fiber.StatusOK).JSON(ResponseBody{Status: Success, Data: sessions, TotalItem: &total})
}

// sessionID extracts and validates the path parameter shared by the
// per-session routes.
func (hdl *HTTPHandler) sessionID(c *fiber.Ctx) (string, error) {
	sid := c.Params("id")
	if err := hdl.validator.ValidateVar(sid, "required,max=255"); err != nil {
		logrus.Errorln(err)
		return "", err
	}
	return sid, nil
}

package handlers

import (
	"log"

	"github.com/Rjvaldo21/correspondence/services"
	"github.com/Rjvaldo21/correspondence/utils"

	"github.com/gofiber/fiber/v2"
)

type VerifyHandler struct {
	verify *services.VerifyService
}

func NewVerifyHandler(verify *services.VerifyService) *VerifyHandler {
	return &VerifyHandler{verify: verify}
}

// Lookup - endpoint publik (tanpa autentikasi) di balik QR surat.
// Kode apa pun yang tidak resolve menghasilkan 404 yang sama; response
// tidak membocorkan isi surat, hanya metadata keaslian.
func (h *VerifyHandler) Lookup(c *fiber.Ctx) error {
	code := c.Params("*")

	result, err := h.verify.Lookup(code)
	if err != nil {
		log.Printf("verify: code=%q ip=%s hasil=miss", code, c.IP())
		return utils.NotFound(c, "Dokumen tidak ditemukan")
	}

	log.Printf("verify: code=%q ip=%s hasil=hit", code, c.IP())
	return utils.OK(c, "Dokumen terverifikasi", result)
}

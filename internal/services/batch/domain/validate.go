package domain

// registers the qrcolor, qrbackground and qrformat tags Request relies on
import _ "qrforge/internal/services/export/domain"

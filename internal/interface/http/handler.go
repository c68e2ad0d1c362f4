package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oceantrail/divelog-api/internal/domain"
	"github.com/oceantrail/divelog-api/internal/domain/entity"
	"github.com/oceantrail/divelog-api/pkg/response"
)

// respondDomainError maps typed domain errors onto HTTP statuses.
// Validation failures are 400, lifecycle conflicts 409, missing resources 404.
func respondDomainError(c *gin.Context, err error) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		response.Error[any](c, http.StatusBadRequest, "validation failed", map[string]string{ve.Field: ve.Message})
		return
	}
	var sce *domain.StateConflictError
	if errors.As(err, &sce) {
		response.Error[any](c, http.StatusConflict, sce.Message, nil)
		return
	}
	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		response.Error[any](c, http.StatusNotFound, nfe.Error(), nil)
		return
	}
	response.Error[any](c, http.StatusInternalServerError, "internal error", nil)
}

func userView(u *entity.User) gin.H {
	p := u.Profile()
	return gin.H{
		"id":            u.ID(),
		"email":         u.Email(),
		"username":      u.Username(),
		"first_name":    p.FirstName(),
		"last_name":     p.LastName(),
		"bio":           p.Bio(),
		"avatar_url":    p.AvatarURL(),
		"is_premium":    u.IsPremium(),
		"premium_since": u.PremiumSince(),
		"created_at":    u.CreatedAt(),
		"updated_at":    u.UpdatedAt(),
	}
}

func diveLogView(d *entity.DiveLog) gin.H {
	view := gin.H{
		"id":                d.ID(),
		"user_id":           d.UserID(),
		"diving_spot_id":    d.DivingSpotID(),
		"buddy_user_id":     d.BuddyUserID(),
		"dive_date":         d.DiveDate(),
		"duration_minutes":  d.Duration().Minutes(),
		"max_depth_m":       d.MaxDepth().Meters(),
		"start_pressure":    d.StartPressure(),
		"end_pressure":      d.EndPressure(),
		"tank_volume":       d.TankVolume(),
		"gas_type":          d.Gas(),
		"oxygen_percentage": d.OxygenPercentage(),
		"air_consumed":      d.AirConsumed(),
		"sac_rate":          d.SACRate(),
		"notes":             d.Notes(),
		"created_at":        d.CreatedAt(),
		"updated_at":        d.UpdatedAt(),
	}
	if avg := d.AverageDepth(); avg != nil {
		view["average_depth_m"] = avg.Meters()
	}
	if t := d.WaterTemperature(); t != nil {
		view["water_temperature_c"] = t.Celsius()
	}
	if v := d.Visibility(); v != nil {
		view["visibility_m"] = v.Meters()
	}
	return view
}

func photoView(p entity.Photo) gin.H {
	return gin.H{
		"id":          p.ID(),
		"url":         p.URL(),
		"caption":     p.Caption(),
		"uploaded_by": p.UploadedBy(),
		"uploaded_at": p.UploadedAt(),
	}
}

func ratingView(r entity.Rating) gin.H {
	return gin.H{
		"id":         r.ID(),
		"user_id":    r.UserID(),
		"score":      r.Score(),
		"comment":    r.Comment(),
		"created_at": r.CreatedAt(),
		"updated_at": r.UpdatedAt(),
	}
}

func spotView(s *entity.DivingSpot) gin.H {
	photos := make([]gin.H, 0, len(s.Photos()))
	for _, p := range s.Photos() {
		photos = append(photos, photoView(p))
	}
	ratings := make([]gin.H, 0, len(s.Ratings()))
	for _, r := range s.Ratings() {
		ratings = append(ratings, ratingView(r))
	}
	view := gin.H{
		"id":          s.ID(),
		"name":        s.Name(),
		"description": s.Description(),
		"location": gin.H{
			"latitude":  s.Location().Latitude(),
			"longitude": s.Location().Longitude(),
		},
		"created_by":     s.CreatedBy(),
		"average_rating": s.AverageRating(),
		"total_ratings":  s.TotalRatings(),
		"photos":         photos,
		"ratings":        ratings,
		"created_at":     s.CreatedAt(),
		"updated_at":     s.UpdatedAt(),
	}
	if d := s.MaximumDepth(); d != nil {
		view["max_depth_m"] = d.Meters()
	}
	if t := s.CurrentTemperature(); t != nil {
		view["water_temperature_c"] = t.Celsius()
	}
	if v := s.CurrentVisibility(); v != nil {
		view["visibility_m"] = v.Meters()
	}
	return view
}

func eventView(e *entity.Event) gin.H {
	participants := make([]gin.H, 0, e.ParticipantCount())
	for _, p := range e.Participants() {
		participants = append(participants, gin.H{
			"user_id":       p.UserID(),
			"comment":       p.Comment(),
			"registered_at": p.RegisteredAt(),
		})
	}
	view := gin.H{
		"id":                e.ID(),
		"title":             e.Title(),
		"description":       e.Description(),
		"event_date":        e.EventDate(),
		"location_name":     e.LocationName(),
		"diving_spot_id":    e.DivingSpotID(),
		"organizer_id":      e.OrganizerID(),
		"max_participants":  e.MaxParticipants(),
		"status":            e.Status(),
		"is_full":           e.IsFull(),
		"available_spots":   e.AvailableSpots(),
		"participant_count": e.ParticipantCount(),
		"participants":      participants,
		"created_at":        e.CreatedAt(),
		"updated_at":        e.UpdatedAt(),
	}
	if loc := e.Location(); loc != nil {
		view["location"] = gin.H{
			"latitude":  loc.Latitude(),
			"longitude": loc.Longitude(),
		}
	}
	return view
}

func conversationView(c *entity.Conversation) gin.H {
	return gin.H{
		"id":              c.ID(),
		"is_group":        c.IsGroup(),
		"title":           c.Title(),
		"participant_ids": c.ParticipantIDs(),
		"last_message_at": c.LastMessageAt(),
		"created_at":      c.CreatedAt(),
		"updated_at":      c.UpdatedAt(),
	}
}

func messageView(m *entity.Message) gin.H {
	return gin.H{
		"id":              m.ID(),
		"conversation_id": m.ConversationID(),
		"sender_id":       m.SenderID(),
		"content":         m.Content(),
		"sent_at":         m.SentAt(),
		"read_by":         m.ReadByUserIDs(),
		"updated_at":      m.UpdatedAt(),
	}
}

func achievementView(a *entity.Achievement) gin.H {
	return gin.H{
		"id":             a.ID(),
		"title":          a.Title(),
		"description":    a.Description(),
		"type":           a.Type(),
		"category":       a.Category(),
		"points":         a.Points(),
		"icon_url":       a.IconURL(),
		"required_value": a.RequiredValue(),
		"is_secret":      a.IsSecret(),
		"created_at":     a.CreatedAt(),
		"updated_at":     a.UpdatedAt(),
	}
}

func notificationView(n *entity.Notification) gin.H {
	return gin.H{
		"id":           n.ID(),
		"user_id":      n.UserID(),
		"type":         n.Type(),
		"title":        n.Title(),
		"message":      n.Message(),
		"priority":     n.Priority(),
		"is_read":      n.IsRead(),
		"read_at":      n.ReadAt(),
		"reference_id": n.ReferenceID(),
		"created_at":   n.CreatedAt(),
	}
}

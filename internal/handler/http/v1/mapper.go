package v1

import "github.com/shenikar/golden_hour_dispatch/internal/models"

// DTOToEmergencyInput преобразует DTO регистрации в каноническую форму входа
func DTOToEmergencyInput(dto CreateEmergencyRequest) models.EmergencyInput {
	return models.EmergencyInput{
		EmergencyID:  dto.EmergencyID,
		Latitude:     dto.Location.Lat,
		Longitude:    dto.Location.Lng,
		Symptoms:     dto.Symptoms,
		Vitals:       dto.Vitals,
		Age:          dto.Age,
		ContactEmail: dto.ContactEmail,
	}
}

// SnapshotToEmergencyResponse преобразует срез состояния вызова в DTO для ответа
func SnapshotToEmergencyResponse(snapshot *models.EmergencySnapshot) *EmergencyResponse {
	resp := &EmergencyResponse{
		ID:            snapshot.ID,
		Status:        string(snapshot.Status),
		Priority:      snapshot.Priority,
		HospitalID:    snapshot.HospitalID,
		EtaMinutes:    snapshot.EtaMinutes,
		FailureReason: snapshot.FailureReason,
		CreatedAt:     snapshot.CreatedAt,
		UpdatedAt:     snapshot.UpdatedAt,
	}
	if snapshot.Severity != nil {
		severity := string(*snapshot.Severity)
		resp.Severity = &severity
	}
	return resp
}

// ModelToHospitalResponse преобразует доменную модель больницы в DTO
func ModelToHospitalResponse(model *models.Hospital) *HospitalResponse {
	return &HospitalResponse{
		ID:                   model.ID,
		Name:                 model.Name,
		Latitude:             model.Latitude,
		Longitude:            model.Longitude,
		ICUBedsAvailable:     model.ICUBedsAvailable,
		ICUBedsTotal:         model.ICUBedsTotal,
		GeneralBedsAvailable: model.GeneralBedsAvailable,
		GeneralBedsTotal:     model.GeneralBedsTotal,
		Capabilities:         model.Capabilities,
		ContactEmail:         model.ContactEmail,
	}
}

// ModelsToHospitalResponses преобразует слайс моделей в слайс DTO
func ModelsToHospitalResponses(hospitals []models.Hospital) []*HospitalResponse {
	responses := make([]*HospitalResponse, len(hospitals))
	for i := range hospitals {
		responses[i] = ModelToHospitalResponse(&hospitals[i])
	}
	return responses
}

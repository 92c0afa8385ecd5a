package domain

// Переходы состояний слота. Методы меняют только структуру в памяти,
// вызывающий код обязан держать блокировку строки и сохранить результат

// Book бронирует слот за кандидатом
// Повторное бронирование тем же кандидатом не меняет слот и возвращает changed=false
func (s *Slot) Book(candidateID int64) (changed bool, err error) {
	switch s.Status {
	case SlotStatusAvailable:
		s.Status = SlotStatusBooked
		s.CandidateID = &candidateID
		return true, nil
	case SlotStatusBooked:
		if s.IsBookedBy(candidateID) {
			return false, nil
		}
		return false, &BookingConflictError{SlotID: s.ID}
	default:
		return false, NewSlotTransitionError(s.ID, s.Status, SlotStatusBooked)
	}
}

// Release возвращает слот в available, только если его держит candidateID
// В остальных случаях слот не меняется
func (s *Slot) Release(candidateID int64) bool {
	if !s.IsBookedBy(candidateID) {
		return false
	}
	s.Status = SlotStatusAvailable
	s.CandidateID = nil
	s.MeetingLink = nil
	s.ProviderMeetingID = nil
	return true
}

// Cancel отменяет слот. Возвращает кандидата, который его держал (если был)
// Ссылка на встречу снимается вместе с кандидатом
func (s *Slot) Cancel() (*int64, error) {
	if !s.IsActive() {
		return nil, NewSlotTransitionError(s.ID, s.Status, SlotStatusCancelled)
	}
	holder := s.CandidateID
	s.Status = SlotStatusCancelled
	s.CandidateID = nil
	s.MeetingLink = nil
	s.ProviderMeetingID = nil
	return holder, nil
}

// Complete отмечает проведённое интервью
// Кандидат остаётся в принятой заявке, у слота он сбрасывается
func (s *Slot) Complete() error {
	if s.Status != SlotStatusBooked {
		return NewSlotTransitionError(s.ID, s.Status, SlotStatusCompleted)
	}
	s.Status = SlotStatusCompleted
	s.CandidateID = nil
	return nil
}

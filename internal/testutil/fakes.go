package testutil

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/jobfair-interviews/internal/integrations/eventservice"
	"github.com/m04kA/jobfair-interviews/internal/integrations/meetingprovider"
	"github.com/m04kA/jobfair-interviews/internal/integrations/notifier"
)

// Directory in-memory справочник мероприятий и вакансий
type Directory struct {
	mu       sync.Mutex
	events   map[int64]*eventservice.Event
	postings map[int64]*eventservice.Posting
	Err      error // если задана, возвращается всеми методами
}

// NewDirectory создает пустой справочник
func NewDirectory() *Directory {
	return &Directory{
		events:   make(map[int64]*eventservice.Event),
		postings: make(map[int64]*eventservice.Posting),
	}
}

// AddEvent добавляет мероприятие
func (d *Directory) AddEvent(event *eventservice.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events[event.ID] = event
}

// AddPosting добавляет вакансию
func (d *Directory) AddPosting(posting *eventservice.Posting) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.postings[posting.ID] = posting
}

func (d *Directory) GetEvent(_ context.Context, eventID int64) (*eventservice.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	event, ok := d.events[eventID]
	if !ok {
		return nil, eventservice.ErrEventNotFound
	}
	return event, nil
}

func (d *Directory) GetPosting(_ context.Context, postingID int64) (*eventservice.Posting, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.Err != nil {
		return nil, d.Err
	}
	posting, ok := d.postings[postingID]
	if !ok {
		return nil, eventservice.ErrPostingNotFound
	}
	return posting, nil
}

// MeetingProvider фейковый провайдер видеовстреч
type MeetingProvider struct {
	mu       sync.Mutex
	Requests []meetingprovider.MeetingRequest
	Err      error
}

func (p *MeetingProvider) CreateMeeting(_ context.Context, req meetingprovider.MeetingRequest) (*meetingprovider.Meeting, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Requests = append(p.Requests, req)
	if p.Err != nil {
		return nil, p.Err
	}
	return &meetingprovider.Meeting{
		Link:              fmt.Sprintf("https://meet.test/%s", req.SlotID),
		ProviderMeetingID: req.SlotID.String(),
	}, nil
}

// Calls возвращает количество вызовов CreateMeeting
func (p *MeetingProvider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Requests)
}

// Notifications запоминает отправленные уведомления
type Notifications struct {
	mu   sync.Mutex
	sent []notifier.Notification
}

func (n *Notifications) Notify(_ context.Context, notifications ...notifier.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, notifications...)
}

// Sent возвращает копию отправленных уведомлений
func (n *Notifications) Sent() []notifier.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notifier.Notification(nil), n.sent...)
}

// Kinds возвращает пары "пользователь:вид" в порядке отправки
func (n *Notifications) Kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	kinds := make([]string, 0, len(n.sent))
	for _, sent := range n.sent {
		kinds = append(kinds, fmt.Sprintf("%d:%s", sent.UserID, sent.Kind))
	}
	return kinds
}

// Reset очищает список
func (n *Notifications) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

// Metrics запоминает доменные счётчики
type Metrics struct {
	mu                   sync.Mutex
	SlotsCreated         int
	Transitions          map[string]int
	Conflicts            map[string]int
	ProvisioningFailures int
}

func (m *Metrics) AddSlotsCreated(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlotsCreated += n
}

func (m *Metrics) IncSlotTransition(transition string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Transitions == nil {
		m.Transitions = make(map[string]int)
	}
	m.Transitions[transition]++
}

func (m *Metrics) IncConflict(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Conflicts == nil {
		m.Conflicts = make(map[string]int)
	}
	m.Conflicts[kind]++
}

func (m *Metrics) IncProvisioningFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ProvisioningFailures++
}

// Clock фиксированное время
type Clock struct {
	T time.Time
}

func (c *Clock) Now() time.Time {
	return c.T
}

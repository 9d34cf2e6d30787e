package export

import (
	"errors"
	"fmt"
	"time"

	"github.com/ALT-F4-LLC/chatexport/internal/model"
)

var errMissing = errors.New("not found")

// fakeStore implements ChatStore, MessageStore and ContactStore in memory.
type fakeStore struct {
	chats        map[int][]int
	messages     map[int]*model.Message
	contacts     map[int]*model.Contact
	listErr      error
	contactCalls []int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		chats:    map[int][]int{},
		messages: map[int]*model.Message{},
		contacts: map[int]*model.Contact{},
	}
}

func (s *fakeStore) ListMessageIDs(chatID int) ([]int, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.chats[chatID], nil
}

func (s *fakeStore) LoadMessage(id int) (*model.Message, error) {
	m, ok := s.messages[id]
	if !ok {
		return nil, fmt.Errorf("message %d: %w", id, errMissing)
	}
	return m, nil
}

func (s *fakeStore) GetContact(id int) (*model.Contact, error) {
	s.contactCalls = append(s.contactCalls, id)
	c, ok := s.contacts[id]
	if !ok {
		return nil, fmt.Errorf("contact %d: %w", id, errMissing)
	}
	return c, nil
}

var baseTime = time.Date(2020, 2, 25, 15, 49, 0, 0, time.UTC)

// addMessage appends a loadable message to chat 1.
func (s *fakeStore) addMessage(id, fromID int, text string, file string) {
	s.chats[1] = append(s.chats[1], id)
	s.messages[id] = &model.Message{
		ID:        id,
		ChatID:    1,
		FromID:    fromID,
		Text:      text,
		File:      file,
		Timestamp: baseTime.Add(time.Duration(id) * time.Minute),
	}
}

// addBrokenMessage lists a message id whose load fails.
func (s *fakeStore) addBrokenMessage(id int) {
	s.chats[1] = append(s.chats[1], id)
}

func (s *fakeStore) addContact(id int, name, profileImage string) {
	s.contacts[id] = &model.Contact{ID: id, Name: name, ProfileImage: profileImage}
}

func newTestExporter(s *fakeStore, opts ...Option) *Exporter {
	return New(s, s, s, opts...)
}

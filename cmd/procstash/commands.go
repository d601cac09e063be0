package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/procstash/procstash/logger"
	"github.com/procstash/procstash/store"
)

var commands = map[string]func(s *store.Store, l *logger.Logger, fields []string) error{

	"add": func(s *store.Store, l *logger.Logger, fields []string) error {
		token, err := s.Add(fields...)
		if err != nil {
			return err
		}
		if token == 0 {
			l.Warnf("record already present, nothing added")
			return nil
		}
		l.Successf("record %d added", token)
		return nil
	},

	"get": func(s *store.Store, l *logger.Logger, fields []string) error {
		records, err := s.Get(fields...)
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Println(record)
		}
		return nil
	},

	"delete": func(s *store.Store, l *logger.Logger, fields []string) error {
		return s.Delete(fields...)
	},

	"list": func(s *store.Store, l *logger.Logger, fields []string) error {
		records, err := s.List()
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Println(record)
		}
		return nil
	},

	"destroy": func(s *store.Store, l *logger.Logger, fields []string) error {
		return s.Destroy()
	},

	"filter": func(s *store.Store, l *logger.Logger, fields []string) error {
		options := store.FilterOptions{}
		if len(fields) > 0 {
			err := json.Unmarshal([]byte(fields[0]), &options.Filter)
			if err != nil {
				return fmt.Errorf("parse filter: %w", err)
			}
		}
		records, err := s.Filter(options)
		if err != nil {
			return err
		}
		for _, record := range records {
			fmt.Println(record)
		}
		return nil
	},

	"export": func(s *store.Store, l *logger.Logger, fields []string) error {
		return s.Export(os.Stdout)
	},
}

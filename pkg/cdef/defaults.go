package cdef

// DefaultConfig returns the built-in table for the POSIX fcntl and poll
// modules.
func DefaultConfig() *Config {
	return &Config{
		Groups: []Group{
			{
				Output: "src/core/sys/posix/fcntl_c.d",
				Header: "fcntl.h",
				Names: []string{
					"F_DUPFD",
					"F_GETFD",
					"F_SETFD",
					"F_GETFL",
					"F_SETFL",
					"F_GETLK",
					"F_SETLK",
					"F_SETLKW",
					"F_SETOWN",
					"F_GETOWN",
					"F_OGETLK",
					"F_OSETLK",
					"F_OSETLKW",
					"F_DUP2FD",

					"FD_CLOEXEC",

					"F_RDLCK",
					"F_WRLCK",
					"F_UNLCK",
					"F_UNCKSYS",
					"F_DUPFD_CLOEXEC",
					"F_DUP2FD_CLOEXEC",
					"F_ISATTY",
					"F_CLOSEM",
					"F_MAXFD",
					"F_GETNOSIGPIPE",
					"F_SETNOSIGPIPE",

					"O_CREAT",
					"O_EXCL",
					"O_NOCTTY",
					"O_TRUNC",
					"O_APPEND",
					"O_DSYNC",
					"O_RSYNC",
					"O_SYNC",
					"O_RDONLY",
					"O_RDWR",
					"O_WRONLY",
					"O_ACCMODE",
					"O_DIRECTORY",
					"O_CLOEXEC",
					"O_NOFOLLOW",
					"O_NONBLOCK",
					"O_SHLOCK",
					"O_EXLOCK",
					"O_ASYNC",
					"O_FSYNC",
					"O_DIRECT",
					"O_LARGEFILE",
					"O_NOATIME",
					"O_PATH",
					"O_TMPFILE",
					"O_NDELAY",
					"O_SEARCH",
					"O_EXEC",
					"O_FBLOCKING",
					"O_FNONBLOCKING",
					"O_FAPPEND",
					"O_FOFFSET",
					"O_FSYNCWRITE",
					"O_FASYNCWRITE",

					"LOCK_SH",
					"LOCK_EX",
					"LOCK_NB",
					"LOCK_UN",

					"AT_FDCWD",
					"AT_EACCESS",
					"AT_SYMLINK_FOLLOW",
					"AT_SYMLINK_NOFOLLOW",
					"AT_REMOVEDIR",

					"FREAD",
					"FWRITE",
					"FAPPEND",
					"FASYNC",
					"FFSYNC",
					"FNONBLOCK",
					"FNDELAY",
					"FPOSIXSHM",
				},
			},
			{
				Output: "src/core/sys/posix/poll_c.d",
				Header: "poll.h",
				Names: []string{
					"POLLIN",
					"POLLRDNORM",
					"POLLRDBAND",
					"POLLPRI",
					"POLLOUT",
					"POLLWRNORM",
					"POLLWRBAND",
					"POLLERR",
					"POLLHUP",
					"POLLNVAL",
					"POLLNORM",
					"POLLSTANDARD",
					"POLLEXTEND",
					"POLLATTRIB",
					"POLLNLINK",
					"POLLWRITE",
				},
			},
		},
	}
}
